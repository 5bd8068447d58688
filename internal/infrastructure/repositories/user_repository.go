package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags).
// Username and email carry unique indexes so concurrent registrations
// for the same identifier resolve at the storage layer.
type DBUser struct {
	ID                uint   `gorm:"primaryKey"`
	Username          string `gorm:"uniqueIndex;size:150"`
	Email             string `gorm:"uniqueIndex;size:255"`
	PasswordHash      string `gorm:"column:password"`
	FirstName         string `gorm:"size:150"`
	LastName          string `gorm:"size:150"`
	Role              string `gorm:"index;size:20"`
	Phone             string `gorm:"size:20"`
	Address           string
	City              string `gorm:"size:100"`
	BloodGroup        string `gorm:"size:10"`
	EmergencyContact  string `gorm:"size:100"`
	EmergencyPhone    string `gorm:"size:20"`
	IsApproved        bool   `gorm:"index"`
	IsEmailVerified   bool
	VerificationToken string `gorm:"index;size:100"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (DBUser) TableName() string { return "users" }

// DBServiceProvider is the database model for ServiceProvider
type DBServiceProvider struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"uniqueIndex"`
	ProviderType    string `gorm:"size:20"`
	BusinessName    string `gorm:"size:200"`
	LicenseNumber   string `gorm:"size:100"`
	Specialization  string `gorm:"size:200"`
	WorkingHours    string `gorm:"size:100"`
	ServicesOffered string
	Rating          float64
	TotalReviews    int
}

func (DBServiceProvider) TableName() string { return "service_providers" }

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return r.mapDuplicate(ctx, user, err)
	}
	user.ID = dbUser.ID
	return nil
}

// CreateWithProvider creates the account and its provider profile in
// one transaction so a provider account never exists without its
// profile.
func (r *UserRepositoryImpl) CreateWithProvider(ctx context.Context, user *domain.User, provider *domain.ServiceProvider) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbUser := userToDB(user)
		if err := tx.Create(dbUser).Error; err != nil {
			return err
		}
		user.ID = dbUser.ID

		if provider != nil {
			dbProv := &DBServiceProvider{
				UserID:          dbUser.ID,
				ProviderType:    provider.ProviderType,
				BusinessName:    provider.BusinessName,
				LicenseNumber:   provider.LicenseNumber,
				Specialization:  provider.Specialization,
				WorkingHours:    provider.WorkingHours,
				ServicesOffered: provider.ServicesOffered,
			}
			if err := tx.Create(dbProv).Error; err != nil {
				return err
			}
			provider.ID = dbProv.ID
			provider.UserID = dbUser.ID
		}
		return nil
	})
	// Map after the rollback so the probe runs on a clean connection.
	return r.mapDuplicate(ctx, user, err)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUsername implements domain.UserRepository
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByVerificationToken implements domain.UserRepository
func (r *UserRepositoryImpl) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, "verification_token = ?", token)
}

// FindProviderProfile returns the provider profile for the account, or
// ErrUserNotFound when none exists.
func (r *UserRepositoryImpl) FindProviderProfile(ctx context.Context, userID uint) (*domain.ServiceProvider, error) {
	var dbProv DBServiceProvider
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.ServiceProvider{
		ID:              dbProv.ID,
		UserID:          dbProv.UserID,
		ProviderType:    dbProv.ProviderType,
		BusinessName:    dbProv.BusinessName,
		LicenseNumber:   dbProv.LicenseNumber,
		Specialization:  dbProv.Specialization,
		WorkingHours:    dbProv.WorkingHours,
		ServicesOffered: dbProv.ServicesOffered,
		Rating:          dbProv.Rating,
		TotalReviews:    dbProv.TotalReviews,
	}, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(userToDB(user)).Error
}

// MarkEmailVerified flips the verified flag and clears any pending
// verification token.
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"is_email_verified": true, "verification_token": ""}).Error
}

// Approve implements domain.UserRepository
func (r *UserRepositoryImpl) Approve(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("is_approved", true).Error
}

// Delete removes the account and any provider profile.
func (r *UserRepositoryImpl) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&DBServiceProvider{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&DBUser{}).Error
	})
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, role, search string) ([]*domain.User, error) {
	q := r.db.WithContext(ctx).Model(&DBUser{}).Order("created_at DESC")
	if role != "" && role != "all" {
		q = q.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("username LIKE ? OR email LIKE ? OR first_name LIKE ?", like, like, like)
	}

	var dbUsers []DBUser
	if err := q.Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, dbToUser(&dbUsers[i]))
	}
	return users, nil
}

// ListPendingApproval implements domain.UserRepository
func (r *UserRepositoryImpl) ListPendingApproval(ctx context.Context) ([]*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Where("is_approved = ? AND role = ?", false, domain.RoleProvider).
		Order("created_at DESC").Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, dbToUser(&dbUsers[i]))
	}
	return users, nil
}

// CountReport builds the aggregate admin report in one pass of counts.
func (r *UserRepositoryImpl) CountReport(ctx context.Context, since time.Time) (*domain.AdminReport, error) {
	report := &domain.AdminReport{}
	db := r.db.WithContext(ctx).Model(&DBUser{})

	if err := db.Count(&report.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("role = ?", domain.RolePatient).Count(&report.TotalPatients).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("role = ?", domain.RoleProvider).Count(&report.TotalProviders).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("is_approved = ? AND role = ?", false, domain.RoleProvider).Count(&report.PendingApprovals).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("created_at >= ?", since).Count(&report.NewUsersThisWeek).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToUser(&dbUser), nil
}

// mapDuplicate resolves a unique-index violation to the identifier
// that collided. A duplicate can slip past the service's pre-checks
// when two registrations race; the row that won the race tells us
// which field it was.
func (r *UserRepositoryImpl) mapDuplicate(ctx context.Context, user *domain.User, err error) error {
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if _, lookupErr := r.findOne(ctx, "email = ?", user.Email); lookupErr == nil {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateUsername
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Role:              user.Role,
		Phone:             user.Phone,
		Address:           user.Address,
		City:              user.City,
		BloodGroup:        user.BloodGroup,
		EmergencyContact:  user.EmergencyContact,
		EmergencyPhone:    user.EmergencyPhone,
		IsApproved:        user.IsApproved,
		IsEmailVerified:   user.IsEmailVerified,
		VerificationToken: user.VerificationToken,
	}
}

func dbToUser(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                dbUser.ID,
		Username:          dbUser.Username,
		Email:             dbUser.Email,
		PasswordHash:      dbUser.PasswordHash,
		FirstName:         dbUser.FirstName,
		LastName:          dbUser.LastName,
		Role:              dbUser.Role,
		Phone:             dbUser.Phone,
		Address:           dbUser.Address,
		City:              dbUser.City,
		BloodGroup:        dbUser.BloodGroup,
		EmergencyContact:  dbUser.EmergencyContact,
		EmergencyPhone:    dbUser.EmergencyPhone,
		IsApproved:        dbUser.IsApproved,
		IsEmailVerified:   dbUser.IsEmailVerified,
		VerificationToken: dbUser.VerificationToken,
		CreatedAt:         dbUser.CreatedAt,
		UpdatedAt:         dbUser.UpdatedAt,
	}
}
