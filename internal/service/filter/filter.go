package filter

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Apply narrows the dataset by status, vehicle, date range and payment method, in
// that order. The result is a row subset of ds.Frame.
func Apply(ds *models.Dataset, sel models.FilterSelection) (dataframe.DataFrame, error) {
	st, err := steps(ds, sel)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df := ds.Frame
	for _, s := range st {
		df = s.apply(df)
	}

	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter rides: %w", df.Err)
	}

	return df, nil
}

// step keeps the rows whose value in col satisfies ok. A nil ok keeps everything.
type step struct {
	col string
	ok  func(v string) bool
}

func (s step) apply(df dataframe.DataFrame) dataframe.DataFrame {
	if s.ok == nil {
		return df
	}
	return keep(df, s.col, s.ok)
}

func steps(ds *models.Dataset, sel models.FilterSelection) ([]step, error) {
	from, to, err := Range(ds, sel)
	if err != nil {
		return nil, err
	}

	status := step{col: types.ColBookingStatus, ok: sel.Status.Contains}
	if sel.Status.All {
		// "all" still drops rows without a status
		status.ok = func(string) bool { return true }
	}

	vehicle := step{col: types.ColVehicleType}
	if !sel.Vehicle.All {
		vehicle.ok = sel.Vehicle.Contains
	}

	date := step{col: types.ColDate, ok: func(string) bool { return false }}
	if !from.IsZero() {
		lo, hi := from.Format(types.DateLayout), to.Format(types.DateLayout)
		date.ok = func(v string) bool { return v >= lo && v <= hi }
	}

	payment := step{col: types.ColPaymentMethod}
	if !sel.Payment.All {
		payment.ok = sel.Payment.Contains
	}

	return []step{status, vehicle, date, payment}, nil
}

// Range resolves the selected date range against the dataset bounds.
func Range(ds *models.Dataset, sel models.FilterSelection) (from, to time.Time, err error) {
	from, to = sel.From, sel.To
	if from.IsZero() {
		from = ds.MinDate
	}
	if to.IsZero() {
		to = ds.MaxDate
	}

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from %s is after to %s",
			types.ErrInvalidDateRange, from.Format(types.DateLayout), to.Format(types.DateLayout))
	}

	return from, to, nil
}

// keep retains the rows whose non-missing value in col satisfies ok.
// Missing values never match.
func keep(df dataframe.DataFrame, col string, ok func(v string) bool) dataframe.DataFrame {
	if df.Err != nil || df.Nrow() == 0 {
		return df
	}

	return df.Filter(dataframe.F{
		Colname:    col,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			if el.IsNA() {
				return false
			}
			return ok(el.String())
		},
	})
}
