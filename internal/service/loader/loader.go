package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/table"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/hasher"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

type Loader struct {
	maxBytes int64
	l        logger.Logger
}

// New creates a loader rejecting inputs larger than maxBytes. maxBytes <= 0 disables the limit.
func New(maxBytes int64, l logger.Logger) *Loader {
	return &Loader{
		maxBytes: maxBytes,
		l:        l,
	}
}

// Load parses a ride record file into a dataset with a fresh id.
func (l *Loader) Load(ctx context.Context, name string, r io.Reader) (*models.Dataset, error) {
	const op = "Loader.Load"
	ctx = wrap.WithAction(ctx, types.ActionLoadDataset)

	raw, err := l.read(r)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	format, err := DetectFormat(name, raw)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	records, err := readRecords(format, raw)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	ds, err := FromRecords(records)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	ds.ID = uuid.New()
	ds.Name = name
	ds.Format = format
	ds.Fingerprint = hasher.SumBytes(raw)
	ds.Size = int64(len(raw))
	ds.LoadedAt = time.Now().UTC()

	l.l.Debug(wrap.WithDatasetID(ctx, ds.ID.String()), "dataset loaded",
		"name", name,
		"format", format,
		"rows", ds.Rows(),
		"extra_columns", len(ds.Schema.Extra()),
	)

	return ds, nil
}

func (l *Loader) read(r io.Reader) ([]byte, error) {
	if l.maxBytes <= 0 {
		return io.ReadAll(r)
	}

	raw, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > l.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", types.ErrFileTooLarge, l.maxBytes)
	}
	return raw, nil
}

// FromRecords builds a dataset from a header row followed by data rows.
// Booking_Status is trimmed and Date normalized to YYYY-MM-DD; cells that fail to
// parse become missing and no row is dropped.
func FromRecords(records [][]string) (*models.Dataset, error) {
	if len(records) == 0 {
		return nil, types.ErrEmptyDataset
	}

	header := dedupe(records[0])
	schema, err := ValidateSchema(header)
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	if len(rows) == 0 {
		return nil, types.ErrEmptyDataset
	}

	columns := make([][]string, len(header))
	for c := range columns {
		columns[c] = make([]string, len(rows))
	}

	for r, row := range rows {
		for c, name := range header {
			var v string
			if c < len(row) {
				v = row[c]
			}
			columns[c][r] = normalize(name, v)
		}
	}

	list := make([]series.Series, len(header))
	for c, name := range header {
		list[c] = series.New(columns[c], series.String, name)
	}

	df := dataframe.New(list...)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, df.Err)
	}

	ds := &models.Dataset{
		Frame:  df,
		Schema: schema,
	}
	ds.MinDate, ds.MaxDate = dateBounds(columns[indexOf(header, types.ColDate)])

	return ds, nil
}

func normalize(column, v string) string {
	if table.IsMissing(v) {
		return table.NA
	}

	switch column {
	case types.ColBookingStatus:
		v = strings.TrimSpace(v)
		if v == "" {
			return table.NA
		}
	case types.ColDate:
		return table.NormalizeDate(v)
	}
	return v
}

func dateBounds(dates []string) (minDate, maxDate time.Time) {
	var lo, hi string
	for _, d := range dates {
		if d == table.NA {
			continue
		}
		if lo == "" || d < lo {
			lo = d
		}
		if hi == "" || d > hi {
			hi = d
		}
	}
	if lo == "" {
		return time.Time{}, time.Time{}
	}

	minDate, _ = time.Parse(types.DateLayout, lo)
	maxDate, _ = time.Parse(types.DateLayout, hi)
	return minDate, maxDate
}

// dedupe suffixes repeated header names with .1, .2 and so on.
func dedupe(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		n := seen[name]
		seen[name] = n + 1
		if n > 0 {
			name = fmt.Sprintf("%s.%d", name, n)
		}
		out[i] = name
	}
	return out
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// IsInputError reports whether err was caused by the uploaded content rather than the server.
func IsInputError(err error) bool {
	return errors.Is(err, types.ErrMissingColumn) ||
		errors.Is(err, types.ErrEmptyDataset) ||
		errors.Is(err, types.ErrUnsupportedFormat) ||
		errors.Is(err, types.ErrFileTooLarge)
}
