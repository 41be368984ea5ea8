package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"

	quickchartgo "github.com/henomis/quickchart-go"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Renderer turns chart specs into Chart.js configs and quickchart image URLs.
// The URL is built locally, nothing is fetched.
type Renderer struct {
	scheme string
	host   string
}

// New creates a renderer. An empty host keeps the public quickchart endpoint.
func New(scheme, host string) *Renderer {
	return &Renderer{scheme: scheme, host: host}
}

var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

type config struct {
	Type    string  `json:"type"`
	Data    data    `json:"data"`
	Options options `json:"options"`
}

type data struct {
	Labels   []string  `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type dataset struct {
	Label           string    `json:"label"`
	Data            points    `json:"data"`
	Fill            bool      `json:"fill"`
	LineTension     float32   `json:"lineTension"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
}

// points writes NaN as null, which Chart.js leaves as a gap.
type points []float64

func (p points) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(p))
	for i := range p {
		if !math.IsNaN(p[i]) {
			out[i] = &p[i]
		}
	}
	return json.Marshal(out)
}

type options struct {
	Title  title   `json:"title"`
	Scales *scales `json:"scales,omitempty"`
}

type title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type scales struct {
	XAxes []axis `json:"xAxes"`
	YAxes []axis `json:"yAxes"`
}

type axis struct {
	ScaleLabel scaleLabel `json:"scaleLabel"`
	Ticks      *ticks     `json:"ticks,omitempty"`
}

type scaleLabel struct {
	Display     bool   `json:"display"`
	LabelString string `json:"labelString"`
}

type ticks struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	StepSize float64 `json:"stepSize"`
}

// Render builds the Chart.js config of spec and its image URL.
func (r *Renderer) Render(spec models.ChartSpec) (models.Chart, error) {
	cfg, err := json.Marshal(buildConfig(spec))
	if err != nil {
		return models.Chart{}, fmt.Errorf("%w: %s: %v", types.ErrChartRender, spec.ID, err)
	}

	qc := quickchartgo.New()
	qc.Config = string(cfg)

	link, err := qc.GetUrl()
	if err != nil {
		return models.Chart{}, fmt.Errorf("%w: %s: %v", types.ErrChartRender, spec.ID, err)
	}

	if link, err = r.rebase(link); err != nil {
		return models.Chart{}, fmt.Errorf("%w: %s: %v", types.ErrChartRender, spec.ID, err)
	}

	return models.Chart{
		ID:     spec.ID,
		Title:  spec.Title,
		Kind:   spec.Kind,
		URL:    link,
		Config: string(cfg),
	}, nil
}

// rebase points link at a self-hosted quickchart instance when one is configured.
func (r *Renderer) rebase(link string) (string, error) {
	if r.host == "" {
		return link, nil
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	if r.scheme != "" {
		u.Scheme = r.scheme
	}
	u.Host = r.host
	return u.String(), nil
}

func buildConfig(spec models.ChartSpec) config {
	cfg := config{
		Type: chartType(spec.Kind),
		Data: data{Labels: spec.Labels},
		Options: options{
			Title: title{Display: true, Text: spec.Title},
		},
	}
	if cfg.Data.Labels == nil {
		cfg.Data.Labels = []string{}
	}

	for i, s := range spec.Datasets {
		ds := dataset{
			Label: s.Label,
			Data:  points(s.Data),
		}
		if ds.Data == nil {
			ds.Data = points{}
		}

		switch spec.Kind {
		case types.ChartPie:
			colors := make([]string, len(s.Data))
			for j := range colors {
				colors[j] = palette[j%len(palette)]
			}
			ds.BackgroundColor = colors
		case types.ChartLine:
			ds.BorderColor = palette[i%len(palette)]
		default:
			ds.BackgroundColor = palette[i%len(palette)]
		}
		cfg.Data.Datasets = append(cfg.Data.Datasets, ds)
	}

	if spec.Kind != types.ChartPie {
		y := axis{ScaleLabel: scaleLabel{Display: spec.YLabel != "", LabelString: spec.YLabel}}
		if spec.YScale != nil {
			y.Ticks = &ticks{Min: spec.YScale.Min, Max: spec.YScale.Max, StepSize: spec.YScale.Step}
		}
		cfg.Options.Scales = &scales{
			XAxes: []axis{{ScaleLabel: scaleLabel{Display: spec.XLabel != "", LabelString: spec.XLabel}}},
			YAxes: []axis{y},
		}
	}

	return cfg
}

func chartType(kind types.ChartKind) string {
	switch kind {
	case types.ChartLine:
		return "line"
	case types.ChartPie:
		return "pie"
	default:
		// grouped bars are a bar chart with one dataset per group member
		return "bar"
	}
}
