package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// OTPServiceImpl implements domain.OTPService on top of the persisted
// passcode ledger.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	config          OTPConfig
}

type OTPConfig struct {
	Length     int
	TTL        time.Duration
	BypassCode string
}

// NewOTPService creates a new ledger-backed OTP service
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, config OTPConfig) domain.OTPService {
	if config.Length <= 0 {
		config.Length = 6
	}
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		config:          config,
	}
}

// Issue generates a fresh code for (email, purpose), superseding any
// unused predecessor, and dispatches it by email, plus SMS when the
// account carries a phone number. A delivery failure does not fail the
// challenge: the ledger row stands and the result carries
// Delivered=false so the caller can surface a warning.
func (s *OTPServiceImpl) Issue(ctx context.Context, email, phone, purpose, displayName string) (*domain.ChallengeResult, error) {
	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if _, err := s.otpRepo.Issue(ctx, email, purpose, code, s.config.TTL); err != nil {
		return nil, fmt.Errorf("failed to persist OTP: %w", err)
	}

	result := &domain.ChallengeResult{
		Email:         email,
		Purpose:       purpose,
		CorrelationID: uuid.NewString(),
		Delivered:     true,
	}

	if err := s.notificationSvc.SendOTPEmail(email, code, displayName); err != nil {
		log.Warn().Err(err).Str("email", email).Str("purpose", purpose).Msg("otp: email delivery failed")
		result.Delivered = false
	}

	if phone != "" {
		message := fmt.Sprintf("Your HealthTrack+ verification code is %s. It expires in %d minutes.",
			code, int(s.config.TTL.Minutes()))
		if err := s.notificationSvc.SendSMS(phone, message); err != nil {
			log.Warn().Err(err).Str("phone", phone).Str("purpose", purpose).Msg("otp: sms delivery failed")
		} else if !result.Delivered {
			// The code still reached the user over the second channel.
			result.Delivered = true
		}
	}

	return result, nil
}

// Validate consumes the code. All failure causes collapse into
// ErrCodeInvalidOrExpired so callers cannot enumerate ledger state.
func (s *OTPServiceImpl) Validate(ctx context.Context, email, code, purpose string) error {
	if s.config.BypassCode != "" && code == s.config.BypassCode {
		log.Warn().Str("email", email).Str("purpose", purpose).Msg("otp: bypass code accepted (debug build)")
		return nil
	}

	if _, err := s.otpRepo.Consume(ctx, email, code, purpose); err != nil {
		return err
	}
	return nil
}

// generateSecureCode draws each digit from crypto/rand so the code is
// uniform over 000000-999999, leading zeros kept.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
