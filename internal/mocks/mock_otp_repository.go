package mocks

import (
	"context"
	"time"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	IssueFunc   func(ctx context.Context, email, purpose, code string, ttl time.Duration) (*domain.OneTimePasscode, error)
	ConsumeFunc func(ctx context.Context, email, code, purpose string) (*domain.OneTimePasscode, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Issue(ctx context.Context, email, purpose, code string, ttl time.Duration) (*domain.OneTimePasscode, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email, purpose, code, ttl)
	}
	return &domain.OneTimePasscode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (m *MockOTPRepository) Consume(ctx context.Context, email, code, purpose string) (*domain.OneTimePasscode, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, email, code, purpose)
	}
	// Default behavior: nothing to consume
	return nil, domain.ErrCodeInvalidOrExpired
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
