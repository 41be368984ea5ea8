package analytics

import (
	"math"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Chart ids in display order.
const (
	ChartDailyRevenue          = "daily_revenue"
	ChartStatusBar             = "status_bar"
	ChartPaymentRevenue        = "payment_revenue"
	ChartCustomerCancellations = "customer_cancellations"
	ChartDriverCancellations   = "driver_cancellations"
	ChartRideVolume            = "ride_volume"
	ChartHourly                = "hourly"
	ChartStatusPie             = "status_pie"
	ChartRatings               = "ratings"
)

// ChartSpecs describes the charts of a view. Charts whose aggregate was skipped are left out.
func ChartSpecs(agg models.Aggregates) []models.ChartSpec {
	specs := []models.ChartSpec{
		dailyRevenueChart(agg.DailyRevenue),
		statusChart(ChartStatusBar, "Booking Status Distribution", types.ChartBar, agg.StatusCounts),
		paymentChart(agg.PaymentRevenue),
	}

	if agg.CustomerCancellations != nil {
		specs = append(specs, reasonsChart(ChartCustomerCancellations, "Reasons for Cancellation by Customers", agg.CustomerCancellations))
	}
	if agg.DriverCancellations != nil {
		specs = append(specs, reasonsChart(ChartDriverCancellations, "Reasons for Cancellation by Drivers", agg.DriverCancellations))
	}

	specs = append(specs, rideVolumeChart(agg.DailyVolume))

	if len(agg.Hourly) > 0 {
		specs = append(specs, hourlyChart(agg.Hourly))
	}

	return append(specs,
		statusChart(ChartStatusPie, "Booking Status Breakdown", types.ChartPie, agg.StatusCounts),
		ratingsChart(agg.Ratings),
	)
}

func dailyRevenueChart(points []models.DateValue) models.ChartSpec {
	labels := make([]string, len(points))
	data := make([]float64, len(points))
	for i, p := range points {
		labels[i], data[i] = p.Date, p.Value
	}

	return models.ChartSpec{
		ID:       ChartDailyRevenue,
		Title:    "Daily Revenue",
		Kind:     types.ChartLine,
		XLabel:   "Date",
		YLabel:   "Booking_Value",
		Labels:   labels,
		Datasets: []models.ChartSeries{{Label: "Booking_Value", Data: data}},
	}
}

func statusChart(id, title string, kind types.ChartKind, counts []models.LabelCount) models.ChartSpec {
	labels, data := labelCounts(counts)
	return models.ChartSpec{
		ID:       id,
		Title:    title,
		Kind:     kind,
		XLabel:   "Booking_Status",
		YLabel:   "Count",
		Labels:   labels,
		Datasets: []models.ChartSeries{{Label: "Count", Data: data}},
	}
}

func paymentChart(values []models.LabelValue) models.ChartSpec {
	labels := make([]string, len(values))
	data := make([]float64, len(values))
	for i, v := range values {
		labels[i], data[i] = v.Label, v.Value
	}

	return models.ChartSpec{
		ID:       ChartPaymentRevenue,
		Title:    "Revenue by Payment Method",
		Kind:     types.ChartPie,
		Labels:   labels,
		Datasets: []models.ChartSeries{{Label: "Booking_Value", Data: data}},
	}
}

func reasonsChart(id, title string, counts []models.LabelCount) models.ChartSpec {
	labels, data := labelCounts(counts)
	return models.ChartSpec{
		ID:       id,
		Title:    title,
		Kind:     types.ChartPie,
		Labels:   labels,
		Datasets: []models.ChartSeries{{Label: "Count", Data: data}},
	}
}

func rideVolumeChart(points []models.DateCount) models.ChartSpec {
	labels := make([]string, len(points))
	data := make([]float64, len(points))
	for i, p := range points {
		labels[i], data[i] = p.Date, float64(p.Count)
	}

	return models.ChartSpec{
		ID:       ChartRideVolume,
		Title:    "Ride Volume Trend",
		Kind:     types.ChartLine,
		XLabel:   "Date",
		YLabel:   "Total Rides",
		Labels:   labels,
		Datasets: []models.ChartSeries{{Label: "Total Rides", Data: data}},
	}
}

func hourlyChart(hours []models.HourCount) models.ChartSpec {
	labels := make([]string, len(hours))
	data := make([]float64, len(hours))
	for i, h := range hours {
		labels[i], data[i] = hourLabel(h.Hour), float64(h.Count)
	}

	return models.ChartSpec{
		ID:       ChartHourly,
		Title:    "Ride Distribution by Hour of Day",
		Kind:     types.ChartBar,
		XLabel:   "Hour of Day",
		YLabel:   "Ride Count",
		Labels:   labels,
		Datasets: []models.ChartSeries{{Label: "Ride Count", Data: data}},
	}
}

// ratingsChart groups the bars by vehicle type on a fixed 0-5 axis.
func ratingsChart(points []models.RatingPoint) models.ChartSpec {
	var vehicles []string
	byType := make(map[string][]float64, 2)
	for _, p := range points {
		if p.RatingType == string(types.RatingDriver) {
			vehicles = append(vehicles, p.VehicleType)
		}
		v := math.NaN()
		if p.Display != nil {
			v = *p.Display
		}
		byType[p.RatingType] = append(byType[p.RatingType], v)
	}

	return models.ChartSpec{
		ID:     ChartRatings,
		Title:  "Average Ratings by Vehicle Type",
		Kind:   types.ChartGroupedBar,
		XLabel: "Vehicle_Type",
		YLabel: "Average Rating",
		Labels: vehicles,
		Datasets: []models.ChartSeries{
			{Label: string(types.RatingDriver), Data: byType[string(types.RatingDriver)]},
			{Label: string(types.RatingCustomer), Data: byType[string(types.RatingCustomer)]},
		},
		YScale: &models.Scale{Min: types.RatingMin, Max: types.RatingMax, Step: types.RatingStep},
	}
}

func labelCounts(counts []models.LabelCount) ([]string, []float64) {
	labels := make([]string, len(counts))
	data := make([]float64, len(counts))
	for i, c := range counts {
		labels[i], data[i] = c.Label, float64(c.Count)
	}
	return labels, data
}
