package models

// Metrics are the scalar aggregates of a filtered view.
// AvgDistance is nil when no row has a distance.
type Metrics struct {
	TotalRides    int      `json:"total_rides"`
	TotalRevenue  float64  `json:"total_revenue"`
	AvgDistance   *float64 `json:"avg_distance"`
	TotalDistance float64  `json:"total_distance"`
	CancelRate    float64  `json:"cancel_rate"`
}

// MetricDisplay holds the formatted metric cards.
type MetricDisplay struct {
	TotalRides    string `json:"total_rides"`
	TotalRevenue  string `json:"total_revenue"`
	AvgDistance   string `json:"avg_distance"`
	TotalDistance string `json:"total_distance"`
	CancelRate    string `json:"cancel_rate"`
}

type DateValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// RatingPoint is one bar of the rating comparison.
// Average is nil when the group has no valid rating, and so is Display, which
// is otherwise clamped to the rating scale.
type RatingPoint struct {
	VehicleType string   `json:"vehicle_type"`
	RatingType  string   `json:"rating_type"`
	Average     *float64 `json:"average_rating"`
	Display     *float64 `json:"display_rating"`
}

// Aggregates feed the charts.
// Nil slices of optional aggregates mean the chart is skipped, see the notices.
type Aggregates struct {
	DailyRevenue          []DateValue   `json:"daily_revenue"`
	StatusCounts          []LabelCount  `json:"status_counts"`
	PaymentRevenue        []LabelValue  `json:"payment_revenue"`
	CustomerCancellations []LabelCount  `json:"customer_cancellations,omitempty"`
	DriverCancellations   []LabelCount  `json:"driver_cancellations,omitempty"`
	DailyVolume           []DateCount   `json:"daily_volume"`
	Hourly                []HourCount   `json:"hourly,omitempty"`
	Ratings               []RatingPoint `json:"ratings"`
}
