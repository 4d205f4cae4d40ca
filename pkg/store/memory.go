package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/OFFIS-RIT/feedlens/pkg/common"
)

// MemoryStore is a ReportStore kept in process memory. Reports are lost on
// restart; it serves single-process setups without a database and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]StoredReport
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[string]StoredReport),
		now:     time.Now,
	}
}

func (s *MemoryStore) CreateReport(_ context.Context, id, inputKey string, withSwot bool) (StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; ok {
		return StoredReport{}, fmt.Errorf("report %s already exists", id)
	}
	now := s.now()
	r := StoredReport{
		ID:        id,
		Status:    StatusPending,
		InputKey:  inputKey,
		WithSwot:  withSwot,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.reports[id] = r
	return r, nil
}

func (s *MemoryStore) GetReport(_ context.Context, id string) (StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return StoredReport{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	return r, nil
}

func (s *MemoryStore) MarkProcessing(_ context.Context, id string) error {
	return s.update(id, func(r *StoredReport) bool {
		if r.Status.Done() {
			return false
		}
		r.Status = StatusProcessing
		return true
	})
}

func (s *MemoryStore) CompleteReport(_ context.Context, id string, result common.Report) error {
	return s.update(id, func(r *StoredReport) bool {
		r.Status = StatusCompleted
		r.Result = &result
		r.Error = ""
		return true
	})
}

func (s *MemoryStore) FailReport(_ context.Context, id string, reason string) error {
	return s.update(id, func(r *StoredReport) bool {
		r.Status = StatusFailed
		r.Error = reason
		return true
	})
}

func (s *MemoryStore) DeleteReport(_ context.Context, id string) (StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return StoredReport{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	delete(s.reports, id)
	return r, nil
}

func (s *MemoryStore) update(id string, fn func(r *StoredReport) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok || !fn(&r) {
		return fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	r.UpdatedAt = s.now()
	s.reports[id] = r
	return nil
}
