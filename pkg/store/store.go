// Package store defines persistence for asynchronous report jobs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/OFFIS-RIT/feedlens/pkg/common"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// ReportStatus is the lifecycle state of a report job.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

// Done reports whether the status is final.
func (s ReportStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// StoredReport is a report job and, once completed, its result. InputKey
// locates the submitted text in object storage.
type StoredReport struct {
	ID        string         `json:"id"`
	Status    ReportStatus   `json:"status"`
	InputKey  string         `json:"-"`
	WithSwot  bool           `json:"with_swot"`
	Result    *common.Report `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ReportStore persists report jobs.
type ReportStore interface {
	CreateReport(ctx context.Context, id string, inputKey string, withSwot bool) (StoredReport, error)
	GetReport(ctx context.Context, id string) (StoredReport, error)
	MarkProcessing(ctx context.Context, id string) error
	CompleteReport(ctx context.Context, id string, result common.Report) error
	FailReport(ctx context.Context, id string, reason string) error
	DeleteReport(ctx context.Context, id string) (StoredReport, error)
}
