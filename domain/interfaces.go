package domain

import (
	"context"
	"time"
)

// UserRepository defines account data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	CreateWithProvider(ctx context.Context, user *User, provider *ServiceProvider) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	FindProviderProfile(ctx context.Context, userID uint) (*ServiceProvider, error)
	Update(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	Approve(ctx context.Context, userID uint) error
	Delete(ctx context.Context, userID uint) error
	List(ctx context.Context, role, search string) ([]*User, error)
	ListPendingApproval(ctx context.Context) ([]*User, error)
	CountReport(ctx context.Context, since time.Time) (*AdminReport, error)
}

// OTPRepository is the persisted passcode ledger. Issue and the
// invalidation of prior unused codes happen as one atomic unit.
type OTPRepository interface {
	Issue(ctx context.Context, email, purpose, code string, ttl time.Duration) (*OneTimePasscode, error)
	Consume(ctx context.Context, email, code, purpose string) (*OneTimePasscode, error)
}

// PendingRegistrationRepository stages registration payloads keyed by
// email until OTP confirmation, with a TTL matching the passcode's.
type PendingRegistrationRepository interface {
	Put(ctx context.Context, reg *PendingRegistration, ttl time.Duration) error
	Get(ctx context.Context, email string) (*PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

// AuthService defines the authentication gateway
type AuthService interface {
	Register(ctx context.Context, reg *PendingRegistration) (*ChallengeResult, error)
	Login(ctx context.Context, username, password string) (*ChallengeResult, *AuthResult, error)
	VerifyOTP(ctx context.Context, email, code, purpose string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email, purpose, displayName string) (*ChallengeResult, error)
	VerifyEmailToken(ctx context.Context, token string) (*User, error)
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService issues and validates one-time passcodes
type OTPService interface {
	Issue(ctx context.Context, email, phone, purpose, displayName string) (*ChallengeResult, error)
	Validate(ctx context.Context, email, code, purpose string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session token operations
type TokenService interface {
	Generate(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService delivers passcodes and verification links.
// Delivery failure is advisory: callers report a warning, never retry.
type NotificationService interface {
	SendOTPEmail(to, code, displayName string) error
	SendVerificationEmail(to, link, displayName string) error
	SendSMS(to, message string) error
}

// RecordsService covers the per-user health data operations
type RecordsService interface {
	AddHealthRecord(ctx context.Context, rec *HealthRecord) error
	ListHealthRecords(ctx context.Context, userID uint) ([]*HealthRecord, error)
	AddMedicine(ctx context.Context, med *Medicine) error
	ListMedicines(ctx context.Context, userID uint) ([]*Medicine, error)
	AddPrescription(ctx context.Context, p *Prescription) error
	ListPrescriptions(ctx context.Context, userID uint) ([]*Prescription, error)
	AddMentalHealthLog(ctx context.Context, m *MentalHealthLog) error
	ListMentalHealthLogs(ctx context.Context, userID uint) ([]*MentalHealthLog, error)
	AddLifestyleLog(ctx context.Context, l *LifestyleLog) error
	ListLifestyleLogs(ctx context.Context, userID uint) ([]*LifestyleLog, error)
	AddInsurancePolicy(ctx context.Context, p *InsurancePolicy) error
	ListInsurancePolicies(ctx context.Context, userID uint) ([]*InsurancePolicy, error)
	Dashboard(ctx context.Context, userID uint) (*DashboardSummary, error)
}

// HealthDataRepository is the storage backend for health entities
type HealthDataRepository interface {
	CreateHealthRecord(ctx context.Context, rec *HealthRecord) error
	ListHealthRecords(ctx context.Context, userID uint) ([]*HealthRecord, error)
	LatestHealthRecord(ctx context.Context, userID uint) (*HealthRecord, error)
	CreateMedicine(ctx context.Context, med *Medicine) error
	ListMedicines(ctx context.Context, userID uint) ([]*Medicine, error)
	CountActiveMedicines(ctx context.Context, userID uint) (int64, error)
	CreatePrescription(ctx context.Context, p *Prescription) error
	ListPrescriptions(ctx context.Context, userID uint) ([]*Prescription, error)
	CreateMentalHealthLog(ctx context.Context, m *MentalHealthLog) error
	ListMentalHealthLogs(ctx context.Context, userID uint) ([]*MentalHealthLog, error)
	LatestMentalHealthLog(ctx context.Context, userID uint) (*MentalHealthLog, error)
	CreateLifestyleLog(ctx context.Context, l *LifestyleLog) error
	ListLifestyleLogs(ctx context.Context, userID uint) ([]*LifestyleLog, error)
	CreateInsurancePolicy(ctx context.Context, p *InsurancePolicy) error
	ListInsurancePolicies(ctx context.Context, userID uint) ([]*InsurancePolicy, error)
	CountHealthRecords(ctx context.Context) (int64, error)
}

// ActivityLogRepository records and reads the audit trail
type ActivityLogRepository interface {
	Record(ctx context.Context, entry *ActivityLog) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]*ActivityLog, error)
	ListRecent(ctx context.Context, limit int) ([]*ActivityLog, error)
}

// AdminService covers the administrator portal operations
type AdminService interface {
	Report(ctx context.Context) (*AdminReport, error)
	PendingApprovals(ctx context.Context) ([]*User, error)
	ApproveProvider(ctx context.Context, userID uint) error
	RejectProvider(ctx context.Context, userID uint) error
	ListUsers(ctx context.Context, role, search string) ([]*User, error)
}

// ChatService proxies free-text messages to the completion API
type ChatService interface {
	Ask(ctx context.Context, message string) (string, error)
}

// CompletionClient is one round trip to a chat-completion model
type CompletionClient interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}
