package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// NotificationServiceImpl implements domain.NotificationService: email
// via Mailtrap, SMS via Twilio.
type NotificationServiceImpl struct {
	mail       *MailtrapClient
	twilio     *twilio.RestClient
	fromNumber string
}

// NewNotificationService creates a new notification service
func NewNotificationService(mail *MailtrapClient, accountSID, authToken, fromNumber string) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &NotificationServiceImpl{
		mail:       mail,
		twilio:     client,
		fromNumber: fromNumber,
	}
}

// SendOTPEmail implements domain.NotificationService
func (s *NotificationServiceImpl) SendOTPEmail(to, code, displayName string) error {
	if displayName == "" {
		displayName = "there"
	}
	subject := "Your HealthTrack+ Verification Code"
	body := fmt.Sprintf(`Hi %s,

Your verification code for HealthTrack+ is:

    %s

This code will expire in 10 minutes.

If you did not request this code, please ignore this email.

Best regards,
The HealthTrack+ Team
`, displayName, code)

	if err := s.mail.Send(to, subject, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// SendVerificationEmail implements domain.NotificationService
func (s *NotificationServiceImpl) SendVerificationEmail(to, link, displayName string) error {
	if displayName == "" {
		displayName = "there"
	}
	subject := "Verify your email for HealthTrack+"
	body := fmt.Sprintf(`Hi %s,

Welcome to HealthTrack+!

Please click the link below to verify your email address and activate your account:
%s

If you did not register for this account, please ignore this email.

Best regards,
The HealthTrack+ Team
`, displayName, link)

	if err := s.mail.Send(to, subject, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// SendSMS implements domain.NotificationService. With no from-number
// configured the message is logged instead of dispatched.
func (s *NotificationServiceImpl) SendSMS(to, message string) error {
	if s.fromNumber == "" {
		fmt.Printf("[MOCK SMS] To: %s, Message: %s\n", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(message)

	if _, err := s.twilio.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}
