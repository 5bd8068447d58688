package mocks

import (
	"context"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockAuthService implements domain.AuthService for handler tests
type MockAuthService struct {
	RegisterFunc         func(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error)
	LoginFunc            func(ctx context.Context, username, password string) (*domain.ChallengeResult, *domain.AuthResult, error)
	VerifyOTPFunc        func(ctx context.Context, email, code, purpose string) (*domain.AuthResult, error)
	ResendOTPFunc        func(ctx context.Context, email, purpose, displayName string) (*domain.ChallengeResult, error)
	VerifyEmailTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	GetUserProfileFunc   func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return &domain.ChallengeResult{Email: reg.Email, Purpose: domain.PurposeRegister, Delivered: true}, nil
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.ChallengeResult, *domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil, nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code, purpose string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code, purpose)
	}
	return nil, domain.ErrCodeInvalidOrExpired
}

func (m *MockAuthService) ResendOTP(ctx context.Context, email, purpose, displayName string) (*domain.ChallengeResult, error) {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email, purpose, displayName)
	}
	return &domain.ChallengeResult{Email: email, Purpose: purpose, Delivered: true}, nil
}

func (m *MockAuthService) VerifyEmailToken(ctx context.Context, token string) (*domain.User, error) {
	if m.VerifyEmailTokenFunc != nil {
		return m.VerifyEmailTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
