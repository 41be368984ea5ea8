package models

import "github.com/Temutjin2k/ride-analytics/internal/domain/types"

// ChartSpec describes a chart independently of how it is drawn.
type ChartSpec struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Kind     types.ChartKind `json:"kind"`
	XLabel   string          `json:"x_label,omitempty"`
	YLabel   string          `json:"y_label,omitempty"`
	Labels   []string        `json:"labels"`
	Datasets []ChartSeries   `json:"datasets"`
	YScale   *Scale          `json:"y_scale,omitempty"`
}

// ChartSeries is one series of values. A NaN value is drawn as a gap.
type ChartSeries struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Scale fixes an axis range instead of deriving it from data.
type Scale struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Chart is a rendered chart.
type Chart struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Kind   types.ChartKind `json:"kind"`
	URL    string          `json:"url"`
	Config string          `json:"config"`
}
