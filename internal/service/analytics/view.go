package analytics

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/filter"
)

// ComputeView runs the whole pipeline for one selection: filter, metrics,
// aggregates and notices. It reads ds and never changes it.
func ComputeView(ds *models.Dataset, sel models.FilterSelection) (*models.FilteredView, error) {
	frame, err := filter.Apply(ds, sel)
	if err != nil {
		return nil, fmt.Errorf("compute view: %w", err)
	}

	from, to, err := filter.Range(ds, sel)
	if err != nil {
		return nil, fmt.Errorf("compute view: %w", err)
	}
	sel.From, sel.To = from, to

	view := &models.FilteredView{
		Frame:     frame,
		Selection: sel,
		Metrics:   ComputeMetrics(frame),
		Notices:   []models.Notice{},
	}
	view.Display = Display(view.Metrics)

	agg, notices, err := aggregate(ds, frame)
	if err != nil {
		return nil, fmt.Errorf("compute view: %w", err)
	}
	view.Notices = append(view.Notices, notices...)

	view.Aggregates = agg

	return view, nil
}

// aggregate builds every chart table of frame. Cancellation reasons are read from the unfiltered table.
func aggregate(ds *models.Dataset, frame dataframe.DataFrame) (models.Aggregates, []models.Notice, error) {
	var (
		agg     models.Aggregates
		notices []models.Notice
		notice  *models.Notice
		err     error
	)

	if agg.DailyRevenue, err = DailyRevenue(frame); err != nil {
		return agg, nil, err
	}
	if agg.StatusCounts, err = StatusCounts(frame); err != nil {
		return agg, nil, err
	}
	if agg.PaymentRevenue, err = PaymentRevenue(frame); err != nil {
		return agg, nil, err
	}
	if agg.DailyVolume, err = DailyVolume(frame); err != nil {
		return agg, nil, err
	}
	if agg.Ratings, err = Ratings(frame); err != nil {
		return agg, nil, err
	}

	if agg.CustomerCancellations, notice, err = Cancellations(ds, types.ColCanceledByCustomer, "customer"); err != nil {
		return agg, nil, err
	}
	notices = appendNotice(notices, notice)

	if agg.DriverCancellations, notice, err = Cancellations(ds, types.ColCanceledByDriver, "driver"); err != nil {
		return agg, nil, err
	}
	notices = appendNotice(notices, notice)

	agg.Hourly, notice = Hourly(frame, ds.Schema)
	notices = appendNotice(notices, notice)

	return agg, notices, nil
}

func appendNotice(notices []models.Notice, n *models.Notice) []models.Notice {
	if n == nil {
		return notices
	}
	return append(notices, *n)
}
