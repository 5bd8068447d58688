package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using a GORM-backed
// ledger table.
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOneTimePasscode is the database model for the OTP ledger
type DBOneTimePasscode struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index:idx_otp_target;size:255"`
	Code      string    `gorm:"size:10"`
	Purpose   string    `gorm:"index:idx_otp_target;size:20"`
	ExpiresAt time.Time `gorm:"index"`
	Used      bool
	CreatedAt time.Time
}

func (DBOneTimePasscode) TableName() string { return "one_time_passcodes" }

// NewOTPRepository creates a new OTP ledger repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Issue invalidates every unused code for (email, purpose) and inserts
// the new one in the same transaction, so a stale code can never
// outlive its replacement.
func (r *OTPRepositoryImpl) Issue(ctx context.Context, email, purpose, code string, ttl time.Duration) (*domain.OneTimePasscode, error) {
	row := &DBOneTimePasscode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ? AND purpose = ? AND used = ?", email, purpose, false).
			Delete(&DBOneTimePasscode{}).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}

	return dbToOTP(row), nil
}

// Consume validates and burns a code in one step. Exactly one unused,
// unexpired row with an identical code string must match; the row is
// marked used before it is returned so a replay of the same code fails.
// Every mismatch surfaces as ErrCodeInvalidOrExpired.
func (r *OTPRepositoryImpl) Consume(ctx context.Context, email, code, purpose string) (*domain.OneTimePasscode, error) {
	var row DBOneTimePasscode
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ? AND purpose = ? AND code = ? AND used = ? AND expires_at > ?",
			email, purpose, code, false, time.Now()).
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCodeInvalidOrExpired
			}
			return err
		}
		// The flip is conditional on used still being false: under
		// READ COMMITTED two verifies can both read the row as unused,
		// and only the one whose update lands may succeed.
		res := tx.Model(&DBOneTimePasscode{}).
			Where("id = ? AND used = ?", row.ID, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCodeInvalidOrExpired
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	row.Used = true
	return dbToOTP(&row), nil
}

func dbToOTP(row *DBOneTimePasscode) *domain.OneTimePasscode {
	return &domain.OneTimePasscode{
		ID:        row.ID,
		Email:     row.Email,
		Code:      row.Code,
		Purpose:   row.Purpose,
		ExpiresAt: row.ExpiresAt,
		Used:      row.Used,
		CreatedAt: row.CreatedAt,
	}
}
