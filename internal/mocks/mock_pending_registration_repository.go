package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockPendingRegistrationRepository implements
// domain.PendingRegistrationRepository with a real in-memory map, so
// flows that stage and later confirm a registration work end to end.
// The Func fields override individual operations when set.
type MockPendingRegistrationRepository struct {
	PutFunc    func(ctx context.Context, reg *domain.PendingRegistration, ttl time.Duration) error
	GetFunc    func(ctx context.Context, email string) (*domain.PendingRegistration, error)
	DeleteFunc func(ctx context.Context, email string) error

	mu      sync.Mutex
	staged  map[string]*domain.PendingRegistration
}

// NewMockPendingRegistrationRepository creates the in-memory staging store
func NewMockPendingRegistrationRepository() *MockPendingRegistrationRepository {
	return &MockPendingRegistrationRepository{staged: make(map[string]*domain.PendingRegistration)}
}

func (m *MockPendingRegistrationRepository) Put(ctx context.Context, reg *domain.PendingRegistration, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, reg, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged[reg.Email] = reg
	return nil
}

func (m *MockPendingRegistrationRepository) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.staged[email]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	return reg, nil
}

func (m *MockPendingRegistrationRepository) Delete(ctx context.Context, email string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.staged, email)
	return nil
}

// Compile-time interface compliance verification
var _ domain.PendingRegistrationRepository = (*MockPendingRegistrationRepository)(nil)
