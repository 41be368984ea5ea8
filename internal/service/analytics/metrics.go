package analytics

import (
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/table"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// ComputeMetrics returns the scalar aggregates of a filtered view.
// Missing numbers are skipped. The cancel rate of an empty view is 0.
func ComputeMetrics(view dataframe.DataFrame) models.Metrics {
	n := view.Nrow()
	m := models.Metrics{TotalRides: n}

	m.TotalRevenue = sum(table.Floats(view, types.ColBookingValue))

	distances := table.Present(table.Floats(view, types.ColRideDistance))
	m.TotalDistance = floats.Sum(distances)
	if len(distances) > 0 {
		avg := stat.Mean(distances, nil)
		m.AvgDistance = &avg
	}

	if n > 0 {
		var canceled int
		for _, s := range table.Strings(view, types.ColBookingStatus) {
			if slices.Contains(types.CancelStatuses, s) {
				canceled++
			}
		}
		m.CancelRate = 100 * float64(canceled) / float64(n)
	}

	return m
}

// Display formats the metric cards: 1,234 / ₹1,235 / 12.34 km / 33.33% / 1,235 km.
func Display(m models.Metrics) models.MetricDisplay {
	avg := "n/a"
	if m.AvgDistance != nil {
		avg = fmt.Sprintf("%.2f km", *m.AvgDistance)
	}

	return models.MetricDisplay{
		TotalRides:    humanize.Comma(int64(m.TotalRides)),
		TotalRevenue:  "₹" + humanize.Comma(int64(math.Round(m.TotalRevenue))),
		AvgDistance:   avg,
		TotalDistance: humanize.Comma(int64(math.Round(m.TotalDistance))) + " km",
		CancelRate:    fmt.Sprintf("%.2f%%", m.CancelRate),
	}
}

func sum(xs []float64) float64 {
	return floats.Sum(table.Present(xs))
}

func mean(xs []float64) *float64 {
	present := table.Present(xs)
	if len(present) == 0 {
		return nil
	}
	v := stat.Mean(present, nil)
	return &v
}
