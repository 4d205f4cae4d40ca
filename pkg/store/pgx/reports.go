package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/feedlens/internal/util"
	"github.com/OFFIS-RIT/feedlens/pkg/common"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	"github.com/OFFIS-RIT/feedlens/pkg/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxErrorLength = 1000

// DB is the subset of a pgx pool the report storage needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ReportDBStorage implements store.ReportStore on Postgres.
type ReportDBStorage struct {
	conn DB
}

// NewReportDBStorage creates a report storage on top of conn, usually a
// *pgxpool.Pool.
func NewReportDBStorage(conn DB) *ReportDBStorage {
	return &ReportDBStorage{conn: conn}
}

// CreateReport inserts a pending report.
func (s *ReportDBStorage) CreateReport(ctx context.Context, id, inputKey string, withSwot bool) (store.StoredReport, error) {
	row := s.conn.QueryRow(ctx, createReportSQL, id, string(store.StatusPending), inputKey, withSwot)
	r, err := scanReport(row)
	if err != nil {
		return store.StoredReport{}, fmt.Errorf("failed to create report %s: %w", id, err)
	}
	logger.Debug("[Store] Report created", "id", id)
	return r, nil
}

// GetReport loads a report by id.
func (s *ReportDBStorage) GetReport(ctx context.Context, id string) (store.StoredReport, error) {
	r, err := scanReport(s.conn.QueryRow(ctx, getReportSQL, id))
	if err != nil {
		return store.StoredReport{}, notFound(id, err)
	}
	return r, nil
}

// MarkProcessing moves a report that is not yet final to processing.
func (s *ReportDBStorage) MarkProcessing(ctx context.Context, id string) error {
	tag, err := s.conn.Exec(ctx, setStatusSQL, id, string(store.StatusProcessing))
	if err != nil {
		return fmt.Errorf("failed to update report %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// CompleteReport stores the result and marks the report completed.
func (s *ReportDBStorage) CompleteReport(ctx context.Context, id string, result common.Report) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", id, err)
	}

	tag, err := s.conn.Exec(ctx, completeReportSQL, id, data)
	if err != nil {
		return fmt.Errorf("failed to complete report %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// FailReport marks the report failed with a short reason.
func (s *ReportDBStorage) FailReport(ctx context.Context, id string, reason string) error {
	reason = util.Truncate(util.SanitizePostgresText(reason), maxErrorLength)

	tag, err := s.conn.Exec(ctx, failReportSQL, id, reason)
	if err != nil {
		return fmt.Errorf("failed to mark report %s failed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// DeleteReport removes a report and returns it, so the caller can clean up
// the stored input.
func (s *ReportDBStorage) DeleteReport(ctx context.Context, id string) (store.StoredReport, error) {
	r, err := scanReport(s.conn.QueryRow(ctx, deleteReportSQL, id))
	if err != nil {
		return store.StoredReport{}, notFound(id, err)
	}
	return r, nil
}

func scanReport(row pgx.Row) (store.StoredReport, error) {
	var (
		r      store.StoredReport
		status string
		result []byte
		errMsg *string
	)
	if err := row.Scan(&r.ID, &status, &r.InputKey, &r.WithSwot, &result, &errMsg, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return store.StoredReport{}, err
	}
	r.Status = store.ReportStatus(status)
	if errMsg != nil {
		r.Error = *errMsg
	}
	if len(result) > 0 {
		var report common.Report
		if err := json.Unmarshal(result, &report); err != nil {
			return store.StoredReport{}, fmt.Errorf("failed to decode report result: %w", err)
		}
		r.Result = &report
	}
	return r, nil
}

func notFound(id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("report %s: %w", id, store.ErrNotFound)
	}
	return fmt.Errorf("failed to load report %s: %w", id, err)
}

const reportColumns = `id, status, input_key, with_swot, result, error, created_at, updated_at`

const createReportSQL = `
INSERT INTO reports (id, status, input_key, with_swot)
VALUES ($1, $2, $3, $4)
RETURNING ` + reportColumns + `;
`

const getReportSQL = `
SELECT ` + reportColumns + `
FROM reports
WHERE id = $1;
`

const setStatusSQL = `
UPDATE reports
SET status = $2, updated_at = now()
WHERE id = $1 AND status NOT IN ('completed', 'failed');
`

const completeReportSQL = `
UPDATE reports
SET status = 'completed', result = $2, error = NULL, updated_at = now()
WHERE id = $1;
`

const failReportSQL = `
UPDATE reports
SET status = 'failed', error = $2, updated_at = now()
WHERE id = $1;
`

const deleteReportSQL = `
DELETE FROM reports
WHERE id = $1
RETURNING ` + reportColumns + `;
`
