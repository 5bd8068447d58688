package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soumyachk101/HealthTrack-Server/domain"
	"github.com/soumyachk101/HealthTrack-Server/internal/mocks"
)

func TestAdminService_Report(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	healthRepo := mocks.NewMockHealthDataRepository()

	var sinceSeen time.Time
	userRepo.CountReportFunc = func(ctx context.Context, since time.Time) (*domain.AdminReport, error) {
		sinceSeen = since
		return &domain.AdminReport{TotalUsers: 10, TotalPatients: 7, TotalProviders: 2, PendingApprovals: 1}, nil
	}
	healthRepo.CountHealthRecordsFunc = func(ctx context.Context) (int64, error) {
		return 55, nil
	}

	svc := NewAdminService(userRepo, healthRepo, mocks.NewMockActivityLogRepository())

	report, err := svc.Report(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalRecords != 55 || report.TotalUsers != 10 {
		t.Errorf("unexpected report: %+v", report)
	}

	wantSince := time.Now().AddDate(0, 0, -7)
	if sinceSeen.Before(wantSince.Add(-time.Minute)) || sinceSeen.After(wantSince.Add(time.Minute)) {
		t.Errorf("new-user window = %v, want about a week ago", sinceSeen)
	}
}

func TestAdminService_ApproveProvider(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	activity := mocks.NewMockActivityLogRepository()

	approved := uint(0)
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		if id != 5 {
			return nil, domain.ErrUserNotFound
		}
		return &domain.User{ID: 5, Role: domain.RoleProvider}, nil
	}
	userRepo.ApproveFunc = func(ctx context.Context, userID uint) error {
		approved = userID
		return nil
	}

	svc := NewAdminService(userRepo, mocks.NewMockHealthDataRepository(), activity)

	if err := svc.ApproveProvider(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if approved != 5 {
		t.Errorf("approved = %d, want 5", approved)
	}
	if len(activity.Entries) != 1 || activity.Entries[0].Action != domain.ActionProviderApproved {
		t.Error("expected an approval activity entry")
	}

	if err := svc.ApproveProvider(context.Background(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("missing user error = %v, want ErrUserNotFound", err)
	}
}

func TestAdminService_RejectProvider(t *testing.T) {
	tests := []struct {
		name       string
		user       *domain.User
		wantErr    error
		wantDelete bool
	}{
		{
			name:       "pending provider is deleted",
			user:       &domain.User{ID: 6, Role: domain.RoleProvider, IsApproved: false},
			wantDelete: true,
		},
		{
			name:    "approved provider cannot be rejected",
			user:    &domain.User{ID: 7, Role: domain.RoleProvider, IsApproved: true},
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
				return tt.user, nil
			}
			deleted := false
			userRepo.DeleteFunc = func(ctx context.Context, userID uint) error {
				deleted = true
				return nil
			}

			svc := NewAdminService(userRepo, mocks.NewMockHealthDataRepository(), mocks.NewMockActivityLogRepository())

			err := svc.RejectProvider(context.Background(), tt.user.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if deleted != tt.wantDelete {
				t.Errorf("deleted = %v, want %v", deleted, tt.wantDelete)
			}
		})
	}
}
