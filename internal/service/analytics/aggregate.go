package analytics

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/table"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// DailyRevenue sums Booking_Value per date, ascending by date.
func DailyRevenue(view dataframe.DataFrame) ([]models.DateValue, error) {
	groups, err := sumBy(view, types.ColDate)
	if err != nil {
		return nil, err
	}

	out := make([]models.DateValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.DateValue{Date: g.Label, Value: g.Value})
	}
	return out, nil
}

// DailyVolume counts rides per date, ascending by date.
func DailyVolume(view dataframe.DataFrame) ([]models.DateCount, error) {
	counts, err := countBy(view, types.ColDate)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(counts, func(a, b models.LabelCount) int { return cmp.Compare(a.Label, b.Label) })

	out := make([]models.DateCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.DateCount{Date: c.Label, Count: c.Count})
	}
	return out, nil
}

// StatusCounts counts rides per booking status, most frequent first.
func StatusCounts(view dataframe.DataFrame) ([]models.LabelCount, error) {
	counts, err := countBy(view, types.ColBookingStatus)
	if err != nil {
		return nil, err
	}
	return byCountDesc(counts), nil
}

// PaymentRevenue sums Booking_Value per payment method, ascending by method.
func PaymentRevenue(view dataframe.DataFrame) ([]models.LabelValue, error) {
	return sumBy(view, types.ColPaymentMethod)
}

// Cancellations tallies the reasons in an optional cancellation column of the
// unfiltered table. A nil result with a notice means the chart is skipped.
func Cancellations(ds *models.Dataset, col, who string) ([]models.LabelCount, *models.Notice, error) {
	if !ds.Schema.Has(col) {
		n := models.Warning(col, "Column '"+col+"' not found in the dataset.")
		return nil, &n, nil
	}

	counts, err := countBy(ds.Frame, col)
	if err != nil {
		return nil, nil, err
	}
	if len(counts) == 0 {
		n := models.Info(col, "No "+who+" cancellation reasons found.")
		return nil, &n, nil
	}

	return byCountDesc(counts), nil, nil
}

// Hourly counts rides per hour of day parsed from Time, ascending by hour.
func Hourly(view dataframe.DataFrame, schema models.Schema) ([]models.HourCount, *models.Notice) {
	if !schema.Has(types.ColTime) {
		n := models.Warning(types.ColTime, "'Time' column not found in the dataset.")
		return nil, &n
	}

	counts := make(map[int]int)
	for _, v := range table.Strings(view, types.ColTime) {
		if h, ok := table.ParseHour(v); ok {
			counts[h]++
		}
	}

	out := make([]models.HourCount, 0, len(counts))
	for h, c := range counts {
		out = append(out, models.HourCount{Hour: h, Count: c})
	}
	slices.SortFunc(out, func(a, b models.HourCount) int { return cmp.Compare(a.Hour, b.Hour) })

	if view.Nrow() > 0 && len(out) == 0 {
		n := models.Info(types.ColTime, "No valid ride times found.")
		return out, &n
	}
	return out, nil
}

// Ratings averages the coerced driver and customer ratings per vehicle type,
// reshaped into one point per vehicle and rating type: all driver points first.
func Ratings(view dataframe.DataFrame) ([]models.RatingPoint, error) {
	groups, err := table.GroupRows(view, types.ColVehicleType)
	if err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}

	keys := slices.Sorted(maps.Keys(groups))
	columns := [][]float64{
		table.Floats(view, types.ColDriverRatings),
		table.Floats(view, types.ColCustomerRating),
	}

	out := make([]models.RatingPoint, 0, 2*len(keys))
	for idx, rt := range []types.RatingType{types.RatingDriver, types.RatingCustomer} {
		for _, k := range keys {
			avg := mean(table.Pick(columns[idx], groups[k]))
			out = append(out, models.RatingPoint{
				VehicleType: k,
				RatingType:  string(rt),
				Average:     avg,
				Display:     clampRating(avg),
			})
		}
	}
	return out, nil
}

// clampRating is nil when there is nothing to draw.
func clampRating(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	v := max(types.RatingMin, min(types.RatingMax, *avg))
	return &v
}

// countBy counts the rows per non-missing value of col.
func countBy(df dataframe.DataFrame, col string) ([]models.LabelCount, error) {
	groups, err := table.GroupRows(df, col)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", col, err)
	}

	out := make([]models.LabelCount, 0, len(groups))
	for label, rows := range groups {
		out = append(out, models.LabelCount{Label: label, Count: len(rows)})
	}
	return out, nil
}

// sumBy sums Booking_Value per non-missing key, ascending by key. Missing values add nothing.
func sumBy(df dataframe.DataFrame, key string) ([]models.LabelValue, error) {
	groups, err := table.GroupRows(df, key)
	if err != nil {
		return nil, fmt.Errorf("sum by %s: %w", key, err)
	}

	values := table.Floats(df, types.ColBookingValue)
	out := make([]models.LabelValue, 0, len(groups))
	for label, rows := range groups {
		out = append(out, models.LabelValue{Label: label, Value: floats.Sum(table.Present(table.Pick(values, rows)))})
	}
	slices.SortFunc(out, func(a, b models.LabelValue) int { return cmp.Compare(a.Label, b.Label) })
	return out, nil
}

func byCountDesc(counts []models.LabelCount) []models.LabelCount {
	out := slices.Clone(counts)
	slices.SortStableFunc(out, func(a, b models.LabelCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

func hourLabel(h int) string {
	return strconv.Itoa(h)
}
