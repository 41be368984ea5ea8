package models

import (
	"slices"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Dataset is one loaded ride record table. It is never mutated after load.
type Dataset struct {
	ID          uuid.UUID
	Name        string
	Format      types.FileFormat
	Fingerprint string
	Size        int64
	LoadedAt    time.Time

	Frame  dataframe.DataFrame
	Schema Schema

	// Date bounds of the unfiltered table. Zero when no row has a valid date.
	MinDate time.Time
	MaxDate time.Time
}

func (d *Dataset) Rows() int {
	return d.Frame.Nrow()
}

// HasDates reports whether at least one row has a valid date.
func (d *Dataset) HasDates() bool {
	return !d.MinDate.IsZero()
}

// Schema is the validated column layout of a table.
type Schema struct {
	Columns  []string
	Optional map[string]bool
}

// Has reports whether the optional column col is present.
func (s Schema) Has(col string) bool {
	return s.Optional[col]
}

// Extra returns the columns that are neither required nor optional.
func (s Schema) Extra() []string {
	var extra []string
	for _, c := range s.Columns {
		if !slices.Contains(types.RequiredColumns, c) && !slices.Contains(types.OptionalColumns, c) {
			extra = append(extra, c)
		}
	}
	return extra
}

// DatasetSummary is the public description of a dataset.
type DatasetSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Format      string    `json:"format"`
	Fingerprint string    `json:"fingerprint"`
	Size        int64     `json:"size_bytes"`
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
	Optional    []string  `json:"optional_columns"`
	LoadedAt    time.Time `json:"loaded_at"`
}

func (d *Dataset) Summary() DatasetSummary {
	opt := make([]string, 0, len(types.OptionalColumns))
	for _, c := range types.OptionalColumns {
		if d.Schema.Has(c) {
			opt = append(opt, c)
		}
	}

	return DatasetSummary{
		ID:          d.ID,
		Name:        d.Name,
		Format:      string(d.Format),
		Fingerprint: d.Fingerprint,
		Size:        d.Size,
		Rows:        d.Rows(),
		Columns:     d.Schema.Columns,
		Optional:    opt,
		LoadedAt:    d.LoadedAt,
	}
}

// DatasetInfo describes a dataset together with its filter choices.
type DatasetInfo struct {
	Dataset DatasetSummary `json:"dataset"`
	Options FilterOptions  `json:"options"`
}

// UploadResult is returned after a dataset is loaded into a new session.
type UploadResult struct {
	DatasetInfo
	Session *Session `json:"session"`
	Notices []Notice `json:"notices"`
}
