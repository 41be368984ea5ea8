package models

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Notice is a non-fatal message shown next to the dashboard.
type Notice struct {
	Level   types.NoticeLevel `json:"level"`
	Column  string            `json:"column,omitempty"`
	Message string            `json:"message"`
}

func Warning(column, message string) Notice {
	return Notice{Level: types.NoticeWarning, Column: column, Message: message}
}

func Info(column, message string) Notice {
	return Notice{Level: types.NoticeInfo, Column: column, Message: message}
}

// FilteredView is the result of one pass of the pipeline over a dataset.
type FilteredView struct {
	Frame      dataframe.DataFrame `json:"-"`
	Selection  FilterSelection     `json:"selection"`
	Metrics    Metrics             `json:"metrics"`
	Display    MetricDisplay       `json:"display"`
	Aggregates Aggregates          `json:"aggregates"`
	Notices    []Notice            `json:"notices"`
}

// Dashboard is a filtered view with its rendered charts.
type Dashboard struct {
	DatasetID uuid.UUID     `json:"dataset_id"`
	Dataset   string        `json:"dataset"`
	Options   FilterOptions `json:"options"`
	View      *FilteredView `json:"view"`
	Charts    []Chart       `json:"charts"`
}
