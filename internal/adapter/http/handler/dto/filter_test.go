package dto

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Temutjin2k/ride-analytics/pkg/validator"
)

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{
		"status":  {"Success", "", "Canceled by Driver"},
		"vehicle": {"Auto"},
		"from":    {"2024-07-01"},
		"to":      {"2024-07-31"},
	}

	req := FilterFromQuery(q)
	assert.Equal(t, []string{"Success", "Canceled by Driver"}, req.Status)
	assert.Equal(t, []string{"Auto"}, req.Vehicle)
	assert.Empty(t, req.Payment)

	v := validator.New()
	req.Validate(v)
	assert.True(t, v.Valid())

	m := req.ToModel()
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), m.From)
	assert.Equal(t, time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC), m.To)
}

func TestFilterRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    FilterRequest
		errKey string
	}{
		{name: "no dates", req: FilterRequest{}},
		{name: "only from", req: FilterRequest{From: "2024-07-01"}},
		{name: "bad format", req: FilterRequest{From: "01/07/2024"}, errKey: "from"},
		{name: "impossible date", req: FilterRequest{To: "2024-02-30"}, errKey: "to"},
		{name: "reversed", req: FilterRequest{From: "2024-07-10", To: "2024-07-01"}, errKey: "from"},
		{name: "same day", req: FilterRequest{From: "2024-07-10", To: "2024-07-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			tt.req.Validate(v)
			if tt.errKey == "" {
				assert.True(t, v.Valid(), v.Errors)
				return
			}
			assert.Contains(t, v.Errors, tt.errKey)
		})
	}
}

func TestExportRequest_Validate(t *testing.T) {
	req := ExportRequest{}
	v := validator.New()
	req.Validate(v)
	assert.True(t, v.Valid())
	assert.Equal(t, "csv", req.Format)

	req = ExportRequest{Format: "parquet"}
	v = validator.New()
	req.Validate(v)
	assert.Contains(t, v.Errors, "format")
}
