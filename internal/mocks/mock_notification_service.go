package mocks

import (
	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendOTPEmailFunc          func(to, code, displayName string) error
	SendVerificationEmailFunc func(to, link, displayName string) error
	SendSMSFunc               func(to, message string) error

	// SentCodes collects OTP codes handed to SendOTPEmail, so tests
	// can fish out the code that a flow generated. SentSMS collects
	// the phone numbers given to SendSMS.
	SentCodes []string
	SentSMS   []string
}

// NewMockNotificationService creates a new MockNotificationService
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendOTPEmail(to, code, displayName string) error {
	m.SentCodes = append(m.SentCodes, code)
	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(to, code, displayName)
	}
	return nil
}

func (m *MockNotificationService) SendVerificationEmail(to, link, displayName string) error {
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(to, link, displayName)
	}
	return nil
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	m.SentSMS = append(m.SentSMS, to)
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
