package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// BcryptPasswordService hashes and checks credentials with bcrypt at
// the library's default work factor.
type BcryptPasswordService struct {
	cost int
}

// NewPasswordService creates a bcrypt-backed password service
func NewPasswordService() domain.PasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

// Hash derives a salted digest of the plaintext password.
func (p *BcryptPasswordService) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the stored digest.
func (p *BcryptPasswordService) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
