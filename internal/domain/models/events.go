package models

import (
	"time"

	"github.com/google/uuid"
)

// DatasetLoadedEvent is published after a dataset is loaded.
type DatasetLoadedEvent struct {
	DatasetID   uuid.UUID `json:"dataset_id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	Rows        int       `json:"rows"`
	Fingerprint string    `json:"fingerprint"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReportGeneratedEvent is published after a report is rendered.
type ReportGeneratedEvent struct {
	DatasetID uuid.UUID `json:"dataset_id"`
	Name      string    `json:"name"`
	Metrics   Metrics   `json:"metrics"`
	Notices   int       `json:"notices"`
	Timestamp time.Time `json:"timestamp"`
}
