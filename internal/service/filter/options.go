package filter

import (
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/table"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Options derives the filter choices from the unfiltered table.
func Options(ds *models.Dataset) models.FilterOptions {
	opts := models.FilterOptions{
		Status:  option(ds, types.ColBookingStatus, types.AllStatuses),
		Vehicle: option(ds, types.ColVehicleType, types.AllVehicles),
		Payment: option(ds, types.ColPaymentMethod, types.AllPayments),
	}

	if ds.HasDates() {
		opts.MinDate = ds.MinDate.Format(types.DateLayout)
		opts.MaxDate = ds.MaxDate.Format(types.DateLayout)
	}

	for col, o := range map[string]models.FilterOption{
		types.ColBookingStatus: opts.Status,
		types.ColVehicleType:   opts.Vehicle,
		types.ColPaymentMethod: opts.Payment,
	} {
		if slices.Contains(o.Values, o.AllLabel) {
			if opts.Collisions == nil {
				opts.Collisions = make(map[string]string)
			}
			opts.Collisions[col] = o.AllLabel
		}
	}

	return opts
}

func option(ds *models.Dataset, col, allLabel string) models.FilterOption {
	return models.FilterOption{
		AllLabel: allLabel,
		Values:   Distinct(table.Strings(ds.Frame, col)),
	}
}

// Distinct returns the non-missing values in order of first appearance.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ParseSelection maps raw control values to a selection. No values, or the sentinel
// label, select everything. When a real value equals the sentinel label the label is
// read as that value.
func ParseSelection(raw []string, o models.FilterOption) models.Selection {
	values := Distinct(raw)
	if len(values) == 0 {
		return models.SelectAll()
	}

	if slices.Contains(values, o.AllLabel) && !slices.Contains(o.Values, o.AllLabel) {
		return models.SelectAll()
	}

	return models.Select(values...)
}
