package mocks

import (
	"context"
	"time"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                  func(ctx context.Context, user *domain.User) error
	CreateWithProviderFunc      func(ctx context.Context, user *domain.User, provider *domain.ServiceProvider) error
	FindByIDFunc                func(ctx context.Context, id uint) (*domain.User, error)
	FindByUsernameFunc          func(ctx context.Context, username string) (*domain.User, error)
	FindByEmailFunc             func(ctx context.Context, email string) (*domain.User, error)
	FindByVerificationTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	FindProviderProfileFunc     func(ctx context.Context, userID uint) (*domain.ServiceProvider, error)
	UpdateFunc                  func(ctx context.Context, user *domain.User) error
	MarkEmailVerifiedFunc       func(ctx context.Context, userID uint) error
	ApproveFunc                 func(ctx context.Context, userID uint) error
	DeleteFunc                  func(ctx context.Context, userID uint) error
	ListFunc                    func(ctx context.Context, role, search string) ([]*domain.User, error)
	ListPendingApprovalFunc     func(ctx context.Context) ([]*domain.User, error)
	CountReportFunc             func(ctx context.Context, since time.Time) (*domain.AdminReport, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) CreateWithProvider(ctx context.Context, user *domain.User, provider *domain.ServiceProvider) error {
	if m.CreateWithProviderFunc != nil {
		return m.CreateWithProviderFunc(ctx, user, provider)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByVerificationTokenFunc != nil {
		return m.FindByVerificationTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindProviderProfile(ctx context.Context, userID uint) (*domain.ServiceProvider, error) {
	if m.FindProviderProfileFunc != nil {
		return m.FindProviderProfileFunc(ctx, userID)
	}
	// Default behavior: no provider profile, account reads as patient
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	if m.MarkEmailVerifiedFunc != nil {
		return m.MarkEmailVerifiedFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) Approve(ctx context.Context, userID uint) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, userID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, role, search string) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, role, search)
	}
	return nil, nil
}

func (m *MockUserRepository) ListPendingApproval(ctx context.Context) ([]*domain.User, error) {
	if m.ListPendingApprovalFunc != nil {
		return m.ListPendingApprovalFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) CountReport(ctx context.Context, since time.Time) (*domain.AdminReport, error) {
	if m.CountReportFunc != nil {
		return m.CountReportFunc(ctx, since)
	}
	return &domain.AdminReport{}, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
