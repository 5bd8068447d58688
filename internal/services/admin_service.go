package services

import (
	"context"
	"fmt"
	"time"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// AdminServiceImpl implements domain.AdminService
type AdminServiceImpl struct {
	userRepo     domain.UserRepository
	healthRepo   domain.HealthDataRepository
	activityRepo domain.ActivityLogRepository
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo domain.UserRepository,
	healthRepo domain.HealthDataRepository,
	activityRepo domain.ActivityLogRepository,
) domain.AdminService {
	return &AdminServiceImpl{
		userRepo:     userRepo,
		healthRepo:   healthRepo,
		activityRepo: activityRepo,
	}
}

// Report implements domain.AdminService
func (s *AdminServiceImpl) Report(ctx context.Context) (*domain.AdminReport, error) {
	weekAgo := time.Now().AddDate(0, 0, -7)
	report, err := s.userRepo.CountReport(ctx, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	total, err := s.healthRepo.CountHealthRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	report.TotalRecords = total
	return report, nil
}

// PendingApprovals implements domain.AdminService
func (s *AdminServiceImpl) PendingApprovals(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListPendingApproval(ctx)
}

// ApproveProvider implements domain.AdminService
func (s *AdminServiceImpl) ApproveProvider(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.Approve(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to approve provider: %w", err)
	}
	_ = s.activityRepo.Record(ctx, &domain.ActivityLog{
		UserID:  user.ID,
		Action:  domain.ActionProviderApproved,
		Details: "Provider registration approved",
	})
	return nil
}

// RejectProvider removes a pending provider account.
func (s *AdminServiceImpl) RejectProvider(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsApproved {
		return domain.ErrUnauthorized
	}
	return s.userRepo.Delete(ctx, user.ID)
}

// ListUsers implements domain.AdminService
func (s *AdminServiceImpl) ListUsers(ctx context.Context, role, search string) ([]*domain.User, error) {
	return s.userRepo.List(ctx, role, search)
}
