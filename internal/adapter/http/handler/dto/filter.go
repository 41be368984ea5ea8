package dto

import (
	"net/url"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/validator"
)

// FilterRequest carries the filter controls of a dashboard request.
// Categories are repeatable and may hold the "all" labels. Dates are YYYY-MM-DD.
type FilterRequest struct {
	Status  []string `json:"status"`
	Vehicle []string `json:"vehicle"`
	Payment []string `json:"payment"`
	From    string   `json:"from"`
	To      string   `json:"to"`
}

// FilterFromQuery reads a FilterRequest from URL query or form values.
func FilterFromQuery(q url.Values) FilterRequest {
	return FilterRequest{
		Status:  nonEmpty(q["status"]),
		Vehicle: nonEmpty(q["vehicle"]),
		Payment: nonEmpty(q["payment"]),
		From:    q.Get("from"),
		To:      q.Get("to"),
	}
}

func (r *FilterRequest) Validate(v *validator.Validator) {
	from, fromOK := checkDate(v, "from", r.From)
	to, toOK := checkDate(v, "to", r.To)

	if fromOK && toOK {
		v.Check(validator.NotAfter(from, to), "from", "must not be after to")
	}
}

// ToModel converts a validated request.
func (r *FilterRequest) ToModel() models.FilterQuery {
	from, _ := parseDate(r.From)
	to, _ := parseDate(r.To)

	return models.FilterQuery{
		Status:  r.Status,
		Vehicle: r.Vehicle,
		Payment: r.Payment,
		From:    from,
		To:      to,
	}
}

func checkDate(v *validator.Validator, key, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	if !validator.Matches(value, validator.DateRX) {
		v.AddError(key, "must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	t, err := parseDate(value)
	if err != nil {
		v.AddError(key, "must be a valid calendar date")
		return time.Time{}, false
	}
	return t, true
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(types.DateLayout, value, time.UTC)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

type ExportRequest struct {
	Format string
}

func (r *ExportRequest) Validate(v *validator.Validator) {
	if r.Format == "" {
		r.Format = string(types.FormatCSV)
	}
	v.Check(validator.PermittedValue(r.Format, string(types.FormatCSV), string(types.FormatXLSX)), "format", "must be csv or xlsx")
}
