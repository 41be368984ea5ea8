package chart

import (
	"encoding/json"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

func ratingsSpec() models.ChartSpec {
	return models.ChartSpec{
		ID:     "ratings",
		Title:  "Average Ratings by Vehicle Type",
		Kind:   types.ChartGroupedBar,
		YLabel: "Average Rating",
		Labels: []string{"Auto", "Bike"},
		Datasets: []models.ChartSeries{
			{Label: "Driver", Data: []float64{4.1, 5}},
			{Label: "Customer", Data: []float64{3.9, 4.2}},
		},
		YScale: &models.Scale{Min: 0, Max: 5, Step: 0.5},
	}
}

func TestRender_GroupedBar(t *testing.T) {
	chart, err := New("", "").Render(ratingsSpec())
	require.NoError(t, err)

	assert.Equal(t, "ratings", chart.ID)
	assert.NotEmpty(t, chart.URL)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(chart.Config), &cfg))
	assert.Equal(t, "bar", cfg["type"])

	yAxes := cfg["options"].(map[string]any)["scales"].(map[string]any)["yAxes"].([]any)
	ticks := yAxes[0].(map[string]any)["ticks"].(map[string]any)
	assert.Equal(t, 0.0, ticks["min"])
	assert.Equal(t, 5.0, ticks["max"])
	assert.Equal(t, 0.5, ticks["stepSize"])

	datasets := cfg["data"].(map[string]any)["datasets"].([]any)
	assert.Len(t, datasets, 2)
}

func TestRender_NaNIsGap(t *testing.T) {
	spec := ratingsSpec()
	spec.Datasets[1].Data = []float64{math.NaN(), 4.2}

	chart, err := New("", "").Render(spec)
	require.NoError(t, err)
	assert.Contains(t, chart.Config, `"data":[null,4.2]`)
	assert.Contains(t, chart.Config, `"data":[4.1,5]`)
}

func TestRender_PieHasNoAxes(t *testing.T) {
	chart, err := New("", "").Render(models.ChartSpec{
		ID:       "payment_revenue",
		Kind:     types.ChartPie,
		Labels:   []string{"Cash", "UPI"},
		Datasets: []models.ChartSeries{{Label: "Booking_Value", Data: []float64{10, 20}}},
	})
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(chart.Config), &cfg))
	assert.Equal(t, "pie", cfg["type"])
	assert.NotContains(t, cfg["options"].(map[string]any), "scales")
}

func TestRender_EmptySpec(t *testing.T) {
	chart, err := New("", "").Render(models.ChartSpec{ID: "daily_revenue", Kind: types.ChartLine, Datasets: []models.ChartSeries{{Label: "x"}}})
	require.NoError(t, err)
	assert.Contains(t, chart.Config, `"labels":[]`)
	assert.Contains(t, chart.Config, `"data":[]`)
}

func TestRender_SelfHosted(t *testing.T) {
	chart, err := New("http", "charts.internal:3400").Render(ratingsSpec())
	require.NoError(t, err)

	u, err := url.Parse(chart.URL)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "charts.internal:3400", u.Host)
}
