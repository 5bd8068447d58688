package mocks

import (
	"context"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc    func(ctx context.Context, email, phone, purpose, displayName string) (*domain.ChallengeResult, error)
	ValidateFunc func(ctx context.Context, email, code, purpose string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, email, phone, purpose, displayName string) (*domain.ChallengeResult, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email, phone, purpose, displayName)
	}
	return &domain.ChallengeResult{Email: email, Purpose: purpose, Delivered: true}, nil
}

func (m *MockOTPService) Validate(ctx context.Context, email, code, purpose string) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, email, code, purpose)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
