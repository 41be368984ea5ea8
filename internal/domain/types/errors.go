package types

import (
	"errors"
	"strings"
)

var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrEmptyDataset      = errors.New("dataset has no rows")
	ErrUnsupportedFormat = errors.New("unsupported or corrupt file format")
	ErrFileTooLarge      = errors.New("file is too large")

	ErrDatasetNotFound = errors.New("dataset not found")
	ErrInvalidSession  = errors.New("invalid or expired session token")
	ErrSessionMismatch = errors.New("session token does not grant access to this dataset")

	ErrInvalidDateRange = errors.New("invalid date range")
	ErrChartRender      = errors.New("chart render failed")
)

// MissingColumnsError names every required column absent from a table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return ErrMissingColumn.Error() + "s: " + strings.Join(e.Columns, ", ")
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumn
}
