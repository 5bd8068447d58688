package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

func setupUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&DBUser{}, &DBServiceProvider{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		Role:         domain.RolePatient,
		IsApproved:   true,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatal(err)
	}
	if user.ID == 0 {
		t.Fatal("ID not backfilled after create")
	}

	byUsername, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if byUsername.ID != user.ID || byEmail.ID != user.ID {
		t.Error("lookups returned different accounts")
	}

	if _, err := repo.FindByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("missing user error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_DuplicatesRejectedByIndex(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RolePatient}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatal(err)
	}

	dup := &domain.User{Username: "alice", Email: "other@example.com", Role: domain.RolePatient}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("duplicate username error = %v, want ErrDuplicateUsername", err)
	}

	dupEmail := &domain.User{Username: "alice2", Email: "alice@example.com", Role: domain.RolePatient}
	if err := repo.Create(ctx, dupEmail); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("duplicate email error = %v, want ErrDuplicateEmail", err)
	}

	// Same mapping through the transactional path.
	dupTx := &domain.User{Username: "alice3", Email: "alice@example.com", Role: domain.RolePatient}
	if err := repo.CreateWithProvider(ctx, dupTx, nil); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("duplicate email via provider create error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUserRepository_CreateWithProvider(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "doc", Email: "doc@example.com", Role: domain.RoleProvider}
	provider := &domain.ServiceProvider{ProviderType: domain.ProviderDoctor, BusinessName: "Dr. Doc"}

	if err := repo.CreateWithProvider(ctx, user, provider); err != nil {
		t.Fatal(err)
	}
	if provider.UserID != user.ID {
		t.Errorf("provider.UserID = %d, want %d", provider.UserID, user.ID)
	}

	got, err := repo.FindProviderProfile(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProviderType != domain.ProviderDoctor {
		t.Errorf("provider type = %q", got.ProviderType)
	}

	// Patients have no profile row.
	patient := &domain.User{Username: "pat", Email: "pat@example.com", Role: domain.RolePatient}
	if err := repo.CreateWithProvider(ctx, patient, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindProviderProfile(ctx, patient.ID); err == nil {
		t.Error("expected no provider profile for a patient")
	}
}

func TestUserRepository_ApproveAndDelete(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "doc", Email: "doc@example.com", Role: domain.RoleProvider}
	provider := &domain.ServiceProvider{ProviderType: domain.ProviderClinic}
	if err := repo.CreateWithProvider(ctx, user, provider); err != nil {
		t.Fatal(err)
	}

	pending, err := repo.ListPendingApproval(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}

	if err := repo.Approve(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	pending, _ = repo.ListPendingApproval(ctx)
	if len(pending) != 0 {
		t.Errorf("pending after approval = %d, want 0", len(pending))
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByID(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("deleted user lookup error = %v, want ErrUserNotFound", err)
	}
	if _, err := repo.FindProviderProfile(ctx, user.ID); err == nil {
		t.Error("provider profile survived account deletion")
	}
}

func TestUserRepository_MarkEmailVerified(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "eve", Email: "eve@example.com", Role: domain.RolePatient, VerificationToken: "tok-1"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	found, err := repo.FindByVerificationToken(ctx, "tok-1")
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkEmailVerified(ctx, found.ID); err != nil {
		t.Fatal(err)
	}

	after, err := repo.FindByID(ctx, found.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !after.IsEmailVerified || after.VerificationToken != "" {
		t.Errorf("verification did not stick: %+v", after)
	}

	// The consumed token no longer resolves, and blank never does.
	if _, err := repo.FindByVerificationToken(ctx, "tok-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("consumed token error = %v, want ErrUserNotFound", err)
	}
	if _, err := repo.FindByVerificationToken(ctx, ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("blank token error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_ListAndCountReport(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seed := []*domain.User{
		{Username: "p1", Email: "p1@example.com", Role: domain.RolePatient, IsApproved: true},
		{Username: "p2", Email: "p2@example.com", Role: domain.RolePatient, IsApproved: true},
		{Username: "doc1", Email: "doc1@example.com", Role: domain.RoleProvider},
		{Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsApproved: true},
	}
	for _, u := range seed {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	patients, err := repo.List(ctx, domain.RolePatient, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(patients) != 2 {
		t.Errorf("patients = %d, want 2", len(patients))
	}

	all, err := repo.List(ctx, "all", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("all = %d, want 4", len(all))
	}

	matched, err := repo.List(ctx, "", "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if len(matched) != 1 || matched[0].Username != "doc1" {
		t.Errorf("search matched %v", matched)
	}

	report, err := repo.CountReport(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalUsers != 4 || report.TotalPatients != 2 || report.TotalProviders != 1 || report.PendingApprovals != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.NewUsersThisWeek != 4 {
		t.Errorf("new users = %d, want 4", report.NewUsersThisWeek)
	}
}
