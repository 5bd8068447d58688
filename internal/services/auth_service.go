package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	pendingRepo     domain.PendingRegistrationRepository
	otpSvc          domain.OTPService
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	activityRepo    domain.ActivityLogRepository
	notificationSvc domain.NotificationService
	config          AuthConfig
}

type AuthConfig struct {
	TokenTTL        time.Duration
	OTPTTL          time.Duration
	RequireLoginOTP bool
	BaseURL         string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	pendingRepo domain.PendingRegistrationRepository,
	otpSvc domain.OTPService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	activityRepo domain.ActivityLogRepository,
	notificationSvc domain.NotificationService,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		pendingRepo:     pendingRepo,
		otpSvc:          otpSvc,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		activityRepo:    activityRepo,
		notificationSvc: notificationSvc,
		config:          config,
	}
}

// Register stages the registration and issues the OTP challenge. No
// account exists until the challenge is answered. A repeat call for
// the same email replaces the staged record.
func (s *AuthServiceImpl) Register(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error) {
	if _, err := s.userRepo.FindByUsername(ctx, reg.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, reg.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	reg.CorrelationID = uuid.NewString()
	reg.CreatedAt = time.Now()

	if err := s.pendingRepo.Put(ctx, reg, s.config.OTPTTL); err != nil {
		return nil, fmt.Errorf("failed to stage registration: %w", err)
	}

	challenge, err := s.otpSvc.Issue(ctx, reg.Email, reg.Phone, domain.PurposeRegister, reg.FirstName)
	if err != nil {
		return nil, fmt.Errorf("failed to issue OTP: %w", err)
	}
	challenge.CorrelationID = reg.CorrelationID
	return challenge, nil
}

// Login checks the credentials and, in the OTP-gated flow, issues a
// login challenge. In the legacy flow a token is returned immediately.
// Either outcome is nil for the other return value.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.ChallengeResult, *domain.AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if !s.config.RequireLoginOTP {
		if !user.IsEmailVerified {
			s.sendVerificationLink(ctx, user)
			return nil, nil, domain.ErrEmailNotVerified
		}
		result, err := s.issueToken(ctx, user)
		if err != nil {
			return nil, nil, err
		}
		s.recordActivity(ctx, user.ID, domain.ActionLogin, "User logged in via API")
		return nil, result, nil
	}

	challenge, err := s.otpSvc.Issue(ctx, user.Email, user.Phone, domain.PurposeLogin, user.FirstName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue OTP: %w", err)
	}
	return challenge, nil, nil
}

// VerifyOTP answers an outstanding challenge. Purpose is part of the
// lookup key: a login code never confirms a registration.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code, purpose string) (*domain.AuthResult, error) {
	switch purpose {
	case domain.PurposeLogin:
		if err := s.otpSvc.Validate(ctx, email, code, purpose); err != nil {
			return nil, err
		}
		user, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, domain.ErrCodeInvalidOrExpired
		}
		result, err := s.issueToken(ctx, user)
		if err != nil {
			return nil, err
		}
		s.recordActivity(ctx, user.ID, domain.ActionLogin, "User logged in via OTP")
		return result, nil

	case domain.PurposeRegister:
		if err := s.otpSvc.Validate(ctx, email, code, purpose); err != nil {
			return nil, err
		}
		return s.confirmRegistration(ctx, email)

	default:
		return nil, domain.ErrCodeInvalidOrExpired
	}
}

// confirmRegistration materializes the staged account. The staging
// record is consumed exactly once: a replayed confirmation finds
// nothing and fails with ErrSessionExpired.
func (s *AuthServiceImpl) confirmRegistration(ctx context.Context, email string) (*domain.AuthResult, error) {
	reg, err := s.pendingRepo.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	hashed, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:        reg.Username,
		Email:           reg.Email,
		PasswordHash:    hashed,
		FirstName:       reg.FirstName,
		LastName:        reg.LastName,
		Role:            reg.Role,
		Phone:           reg.Phone,
		City:            reg.City,
		Address:         reg.Address,
		IsApproved:      reg.IsApproved,
		IsEmailVerified: true,
	}

	var provider *domain.ServiceProvider
	if reg.RequiresProvider() {
		business := reg.BusinessName
		if business == "" {
			business = user.FullName()
		}
		provider = &domain.ServiceProvider{
			ProviderType:    reg.ProviderType,
			BusinessName:    business,
			LicenseNumber:   reg.LicenseNumber,
			Specialization:  reg.Specialization,
			WorkingHours:    reg.WorkingHours,
			ServicesOffered: reg.ServicesOffered,
		}
	}

	if err := s.userRepo.CreateWithProvider(ctx, user, provider); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := s.pendingRepo.Delete(ctx, email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("auth: failed to discard staged registration")
	}

	s.recordActivity(ctx, user.ID, domain.ActionRegistration,
		fmt.Sprintf("New %s registration verified via OTP", user.Role))

	return s.issueToken(ctx, user)
}

// ResendOTP re-issues a challenge unconditionally for well-formed
// input, whether or not a prior challenge exists. The phone number for
// the SMS channel is recovered from the account or, during
// registration, from the staged record.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email, purpose, displayName string) (*domain.ChallengeResult, error) {
	phone := ""
	if user, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		phone = user.Phone
		if displayName == "" {
			displayName = user.FirstName
		}
	} else if reg, err := s.pendingRepo.Get(ctx, email); err == nil {
		phone = reg.Phone
		if displayName == "" {
			displayName = reg.FirstName
		}
	}
	return s.otpSvc.Issue(ctx, email, phone, purpose, displayName)
}

// sendVerificationLink (re)issues the link-based verification mail.
// Accounts created through the OTP flow are verified on creation;
// this path only fires for accounts that predate it.
func (s *AuthServiceImpl) sendVerificationLink(ctx context.Context, user *domain.User) {
	if user.VerificationToken == "" {
		user.VerificationToken = uuid.NewString()
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Warn().Err(err).Uint("user_id", user.ID).Msg("auth: failed to store verification token")
			return
		}
	}
	link := s.config.BaseURL + "/api/auth/verify-email/" + user.VerificationToken
	if err := s.notificationSvc.SendVerificationEmail(user.Email, link, user.FullName()); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("auth: failed to send verification email")
	}
}

// VerifyEmailToken confirms a link-based email verification.
func (s *AuthServiceImpl) VerifyEmailToken(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}
	user.IsEmailVerified = true
	user.VerificationToken = ""
	return user, nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// issueToken signs a bearer token and derives the externally visible
// role label from the provider profile relation.
func (s *AuthServiceImpl) issueToken(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	token, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	role := domain.RolePatient
	if _, err := s.userRepo.FindProviderProfile(ctx, user.ID); err == nil {
		role = domain.RoleProvider
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		Role:      role,
		ExpiresIn: int64(s.config.TokenTTL.Seconds()),
	}, nil
}

func (s *AuthServiceImpl) recordActivity(ctx context.Context, userID uint, action domain.ActivityAction, details string) {
	entry := &domain.ActivityLog{UserID: userID, Action: action, Details: details}
	if err := s.activityRepo.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Str("action", string(action)).Msg("auth: failed to record activity")
	}
}
