package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/soumyachk101/HealthTrack-Server/domain"
	"github.com/soumyachk101/HealthTrack-Server/internal/mocks"
)

type authFixture struct {
	userRepo    *mocks.MockUserRepository
	pendingRepo *mocks.MockPendingRegistrationRepository
	otpSvc      *mocks.MockOTPService
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	activity    *mocks.MockActivityLogRepository
	notifSvc    *mocks.MockNotificationService
	svc         domain.AuthService
}

func newAuthFixture(requireLoginOTP bool) *authFixture {
	f := &authFixture{
		userRepo:    mocks.NewMockUserRepository(),
		pendingRepo: mocks.NewMockPendingRegistrationRepository(),
		otpSvc:      mocks.NewMockOTPService(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		activity:    mocks.NewMockActivityLogRepository(),
		notifSvc:    mocks.NewMockNotificationService(),
	}
	f.svc = NewAuthService(f.userRepo, f.pendingRepo, f.otpSvc, f.passwordSvc, f.tokenSvc, f.activity, f.notifSvc, AuthConfig{
		TokenTTL:        time.Hour,
		OTPTTL:          10 * time.Minute,
		RequireLoginOTP: requireLoginOTP,
	})
	return f
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*authFixture)
		wantErr    error
	}{
		{
			name:       "stages registration and issues challenge",
			setupMocks: func(f *authFixture) {},
		},
		{
			name: "duplicate username rejected before staging",
			setupMocks: func(f *authFixture) {
				f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: username}, nil
				}
			},
			wantErr: domain.ErrDuplicateUsername,
		},
		{
			name: "duplicate email rejected before staging",
			setupMocks: func(f *authFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 1, Email: email}, nil
				}
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(true)
			tt.setupMocks(f)

			reg := &domain.PendingRegistration{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "secret123",
				Role:     domain.RolePatient,
			}

			challenge, err := f.svc.Register(context.Background(), reg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if challenge.CorrelationID == "" {
				t.Error("expected a correlation ID on the challenge")
			}

			staged, err := f.pendingRepo.Get(context.Background(), "alice@example.com")
			if err != nil {
				t.Fatalf("registration was not staged: %v", err)
			}
			if staged.CorrelationID != challenge.CorrelationID {
				t.Errorf("staged correlation %q does not match challenge %q", staged.CorrelationID, challenge.CorrelationID)
			}
		})
	}
}

func TestAuthService_RegisterOverwritesStagedRecord(t *testing.T) {
	f := newAuthFixture(true)

	first := &domain.PendingRegistration{Username: "alice", Email: "alice@example.com", Password: "one"}
	second := &domain.PendingRegistration{Username: "alice2", Email: "alice@example.com", Password: "two"}

	if _, err := f.svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := f.svc.Register(context.Background(), second); err != nil {
		t.Fatalf("second register: %v", err)
	}

	staged, err := f.pendingRepo.Get(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if staged.Username != "alice2" || staged.Password != "two" {
		t.Errorf("second submission did not replace the first: %+v", staged)
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed := "hashed_secret123"

	tests := []struct {
		name            string
		requireLoginOTP bool
		password        string
		setupMocks      func(*authFixture)
		wantErr         error
		wantChallenge   bool
		wantToken       bool
	}{
		{
			name:            "unknown user",
			requireLoginOTP: true,
			password:        "secret123",
			setupMocks:      func(f *authFixture) {},
			wantErr:         domain.ErrInvalidCredentials,
		},
		{
			name:            "wrong password",
			requireLoginOTP: true,
			password:        "wrong",
			setupMocks: func(f *authFixture) {
				f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: username, PasswordHash: hashed}, nil
				}
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:            "valid credentials issue a challenge",
			requireLoginOTP: true,
			password:        "secret123",
			setupMocks: func(f *authFixture) {
				f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: username, Email: "u@example.com", PasswordHash: hashed}, nil
				}
			},
			wantChallenge: true,
		},
		{
			name:            "legacy flow returns a token directly",
			requireLoginOTP: false,
			password:        "secret123",
			setupMocks: func(f *authFixture) {
				f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: username, Email: "u@example.com", PasswordHash: hashed, IsEmailVerified: true}, nil
				}
			},
			wantToken: true,
		},
		{
			name:            "legacy flow rejects an unverified email",
			requireLoginOTP: false,
			password:        "secret123",
			setupMocks: func(f *authFixture) {
				f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: username, Email: "u@example.com", PasswordHash: hashed}, nil
				}
			},
			wantErr: domain.ErrEmailNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(tt.requireLoginOTP)
			tt.setupMocks(f)

			challenge, result, err := f.svc.Login(context.Background(), "alice", tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantChallenge && (challenge == nil || result != nil) {
				t.Errorf("expected challenge only, got challenge=%v result=%v", challenge, result)
			}
			if tt.wantToken && (result == nil || challenge != nil) {
				t.Errorf("expected token only, got challenge=%v result=%v", challenge, result)
			}
		})
	}
}

func TestAuthService_VerifyOTPRegisterConfirms(t *testing.T) {
	f := newAuthFixture(true)

	var created *domain.User
	var createdProvider *domain.ServiceProvider
	f.userRepo.CreateWithProviderFunc = func(ctx context.Context, user *domain.User, provider *domain.ServiceProvider) error {
		user.ID = 42
		created = user
		createdProvider = provider
		return nil
	}

	reg := &domain.PendingRegistration{
		Username:     "bob",
		Email:        "bob@example.com",
		Password:     "secret123",
		Role:         domain.RoleProvider,
		ProviderType: domain.ProviderDoctor,
	}
	if _, err := f.svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := f.svc.VerifyOTP(context.Background(), "bob@example.com", "123456", domain.PurposeRegister)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if created == nil {
		t.Fatal("no account was created")
	}
	if created.PasswordHash != "hashed_secret123" {
		t.Errorf("password was not hashed before persistence: %q", created.PasswordHash)
	}
	if !created.IsEmailVerified {
		t.Error("OTP confirmation should mark the email verified")
	}
	if createdProvider == nil || createdProvider.ProviderType != domain.ProviderDoctor {
		t.Errorf("provider profile missing or wrong: %+v", createdProvider)
	}
	if result.Token == "" {
		t.Error("expected a session token after confirmation")
	}

	// The staging record is consumed: replaying the confirmation fails.
	if _, err := f.svc.VerifyOTP(context.Background(), "bob@example.com", "123456", domain.PurposeRegister); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("replayed confirmation error = %v, want ErrSessionExpired", err)
	}
}

func TestAuthService_VerifyOTPLogin(t *testing.T) {
	f := newAuthFixture(true)
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 7, Username: "carol", Email: email}, nil
	}

	result, err := f.svc.VerifyOTP(context.Background(), "carol@example.com", "123456", domain.PurposeLogin)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Role != domain.RolePatient {
		t.Errorf("account without provider profile should read as patient, got %q", result.Role)
	}
	if len(f.activity.Entries) == 0 || f.activity.Entries[0].Action != domain.ActionLogin {
		t.Error("expected a login activity entry")
	}
}

func TestAuthService_VerifyOTPInvalidCode(t *testing.T) {
	f := newAuthFixture(true)
	f.otpSvc.ValidateFunc = func(ctx context.Context, email, code, purpose string) error {
		return domain.ErrCodeInvalidOrExpired
	}

	if _, err := f.svc.VerifyOTP(context.Background(), "x@example.com", "000000", domain.PurposeLogin); !errors.Is(err, domain.ErrCodeInvalidOrExpired) {
		t.Errorf("error = %v, want ErrCodeInvalidOrExpired", err)
	}
}

func TestAuthService_VerifyOTPUnknownPurpose(t *testing.T) {
	f := newAuthFixture(true)

	if _, err := f.svc.VerifyOTP(context.Background(), "x@example.com", "123456", "something_else"); !errors.Is(err, domain.ErrCodeInvalidOrExpired) {
		t.Errorf("error = %v, want ErrCodeInvalidOrExpired", err)
	}
}

func TestAuthService_RoleDerivedFromProviderProfile(t *testing.T) {
	f := newAuthFixture(false)
	f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{ID: 9, Username: username, PasswordHash: "hashed_pw", IsEmailVerified: true}, nil
	}
	f.userRepo.FindProviderProfileFunc = func(ctx context.Context, userID uint) (*domain.ServiceProvider, error) {
		return &domain.ServiceProvider{UserID: userID, ProviderType: domain.ProviderClinic}, nil
	}

	_, result, err := f.svc.Login(context.Background(), "clinic", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if result.Role != domain.RoleProvider {
		t.Errorf("role = %q, want provider", result.Role)
	}
}

func TestAuthService_ResendRecoversPhone(t *testing.T) {
	f := newAuthFixture(true)

	var gotPhone string
	f.otpSvc.IssueFunc = func(ctx context.Context, email, phone, purpose, displayName string) (*domain.ChallengeResult, error) {
		gotPhone = phone
		return &domain.ChallengeResult{Email: email, Purpose: purpose, Delivered: true}, nil
	}

	// During registration the phone lives only in the staged record.
	reg := &domain.PendingRegistration{
		Username: "carla",
		Email:    "carla@example.com",
		Password: "secret123",
		Phone:    "+15550003",
		Role:     domain.RolePatient,
	}
	if _, err := f.svc.Register(context.Background(), reg); err != nil {
		t.Fatal(err)
	}
	gotPhone = ""
	if _, err := f.svc.ResendOTP(context.Background(), "carla@example.com", domain.PurposeRegister, ""); err != nil {
		t.Fatal(err)
	}
	if gotPhone != "+15550003" {
		t.Errorf("staged resend phone = %q, want +15550003", gotPhone)
	}

	// For an existing account it comes from the user row.
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 5, Email: email, Phone: "+15550004", FirstName: "Dana"}, nil
	}
	gotPhone = ""
	if _, err := f.svc.ResendOTP(context.Background(), "dana@example.com", domain.PurposeLogin, ""); err != nil {
		t.Fatal(err)
	}
	if gotPhone != "+15550004" {
		t.Errorf("account resend phone = %q, want +15550004", gotPhone)
	}
}

func TestAuthService_UnverifiedLoginResendsLink(t *testing.T) {
	f := newAuthFixture(false)

	var stored *domain.User
	f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{ID: 7, Username: username, Email: "old@example.com", PasswordHash: "hashed_pw"}, nil
	}
	f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		stored = user
		return nil
	}
	var sentLink string
	f.notifSvc.SendVerificationEmailFunc = func(to, link, displayName string) error {
		sentLink = link
		return nil
	}

	_, _, err := f.svc.Login(context.Background(), "olduser", "pw")
	if !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("Login() error = %v, want ErrEmailNotVerified", err)
	}
	if stored == nil || stored.VerificationToken == "" {
		t.Fatal("expected a verification token to be stored")
	}
	if !strings.HasSuffix(sentLink, "/api/auth/verify-email/"+stored.VerificationToken) {
		t.Errorf("link %q does not carry the stored token", sentLink)
	}
}

func TestAuthService_VerifyEmailToken(t *testing.T) {
	f := newAuthFixture(true)

	marked := uint(0)
	f.userRepo.FindByVerificationTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
		if token != "tok-1" {
			return nil, domain.ErrUserNotFound
		}
		return &domain.User{ID: 3, Username: "dave", VerificationToken: token}, nil
	}
	f.userRepo.MarkEmailVerifiedFunc = func(ctx context.Context, userID uint) error {
		marked = userID
		return nil
	}

	user, err := f.svc.VerifyEmailToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatal(err)
	}
	if marked != 3 || !user.IsEmailVerified {
		t.Errorf("verification did not stick: marked=%d user=%+v", marked, user)
	}

	if _, err := f.svc.VerifyEmailToken(context.Background(), "bogus"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("bogus token error = %v, want ErrUserNotFound", err)
	}
}
