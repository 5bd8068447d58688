package mocks

import (
	"context"
	"sync"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockActivityLogRepository implements domain.ActivityLogRepository,
// accumulating entries in memory.
type MockActivityLogRepository struct {
	RecordFunc     func(ctx context.Context, entry *domain.ActivityLog) error
	ListByUserFunc func(ctx context.Context, userID uint, limit int) ([]*domain.ActivityLog, error)
	ListRecentFunc func(ctx context.Context, limit int) ([]*domain.ActivityLog, error)

	mu      sync.Mutex
	Entries []*domain.ActivityLog
}

// NewMockActivityLogRepository creates a new MockActivityLogRepository
func NewMockActivityLogRepository() *MockActivityLogRepository {
	return &MockActivityLogRepository{}
}

func (m *MockActivityLogRepository) Record(ctx context.Context, entry *domain.ActivityLog) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockActivityLogRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*domain.ActivityLog, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ActivityLog
	for _, e := range m.Entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockActivityLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Entries
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// Compile-time interface compliance verification
var _ domain.ActivityLogRepository = (*MockActivityLogRepository)(nil)
