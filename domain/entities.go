package domain

import "time"

// Account roles stored on the user record. The role label exposed to
// API clients is two-valued (patient/provider) and derived from the
// provider profile relation, never from this string directly.
const (
	RolePatient  = "patient"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Provider categories
const (
	ProviderHospital = "hospital"
	ProviderClinic   = "clinic"
	ProviderPharmacy = "pharmacy"
	ProviderLab      = "lab"
	ProviderDoctor   = "doctor"
)

// OTP purposes. Purpose is part of the ledger lookup key: a code issued
// for login never validates a register request.
const (
	PurposeRegister      = "register"
	PurposeLogin         = "login"
	PurposePasswordReset = "password_reset"
)

// User represents an account in the system
type User struct {
	ID                uint
	Username          string
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Role              string
	Phone             string
	Address           string
	City              string
	BloodGroup        string
	EmergencyContact  string
	EmergencyPhone    string
	IsApproved        bool
	IsEmailVerified   bool
	VerificationToken string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName returns the display name, falling back to the username.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// IsAdmin reports whether the account is an administrator.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ServiceProvider is the 1:1 profile extension of a provider account.
// It exists if and only if the owning User's role is provider.
type ServiceProvider struct {
	ID              uint
	UserID          uint
	ProviderType    string
	BusinessName    string
	LicenseNumber   string
	Specialization  string
	WorkingHours    string
	ServicesOffered string
	Rating          float64
	TotalReviews    int
}

// OneTimePasscode is an ephemeral challenge record in the OTP ledger.
// Codes are fixed-width digit strings and compared as strings, so
// "000123" and "123" are distinct.
type OneTimePasscode struct {
	ID        uint
	Email     string
	Code      string
	Purpose   string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (o *OneTimePasscode) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// PendingRegistration stages registration fields collected before the
// account exists. It is keyed by email in the staging store and carries
// a correlation ID handed back to the caller. The password is held as
// plaintext only for the lifetime of the staging record.
type PendingRegistration struct {
	CorrelationID string    `json:"correlation_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"password"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	Phone         string    `json:"phone,omitempty"`
	City          string    `json:"city,omitempty"`
	Address       string    `json:"address,omitempty"`
	IsApproved    bool      `json:"is_approved"`
	CreatedAt     time.Time `json:"created_at"`

	// Provider-only fields, empty for patients.
	ProviderType    string `json:"provider_type,omitempty"`
	BusinessName    string `json:"business_name,omitempty"`
	LicenseNumber   string `json:"license_number,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	WorkingHours    string `json:"working_hours,omitempty"`
	ServicesOffered string `json:"services_offered,omitempty"`
}

// RequiresProvider reports whether confirming this registration must
// create a ServiceProvider profile alongside the account.
func (p *PendingRegistration) RequiresProvider() bool {
	return p.Role == RoleProvider
}

// AuthResult represents a completed authentication: the account plus a
// signed bearer token. Role is the derived two-valued label.
type AuthResult struct {
	User      *User
	Token     string
	Role      string
	ExpiresIn int64
}

// ChallengeResult reports an issued OTP challenge. Delivered is false
// when the notification channel failed; the challenge itself stands and
// the caller surfaces a delivery warning instead of an error.
type ChallengeResult struct {
	Email         string
	Purpose       string
	CorrelationID string
	Delivered     bool
}

// TokenClaims represents the JWT claims carried by a session token.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
