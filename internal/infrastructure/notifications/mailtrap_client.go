package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// MailtrapClient sends transactional email through the Mailtrap send
// API. With no API key configured it logs the message instead, so local
// development works without credentials.
type MailtrapClient struct {
	apiKey     string
	apiURL     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// NewMailtrapClient creates a new Mailtrap client
func NewMailtrapClient(apiURL, apiKey, fromEmail, fromName string) *MailtrapClient {
	if apiURL == "" {
		apiURL = "https://send.api.mailtrap.io/api/send"
	}
	if fromEmail == "" {
		fromEmail = "noreply@healthtrack.plus"
	}
	if fromName == "" {
		fromName = "HealthTrack+"
	}
	return &MailtrapClient{
		apiKey:    apiKey,
		apiURL:    apiURL,
		fromEmail: fromEmail,
		fromName:  fromName,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send delivers one plain-text email.
func (m *MailtrapClient) Send(to, subject, text string) error {
	if m.apiKey == "" {
		log.Info().Str("to", to).Str("subject", subject).Msg("mail: no API key, logging instead of sending")
		log.Debug().Str("body", text).Msg("mail body")
		return nil
	}

	reqBody := map[string]interface{}{
		"from": map[string]string{
			"email": m.fromEmail,
			"name":  m.fromName,
		},
		"to": []map[string]string{
			{"email": to},
		},
		"subject": subject,
		"text":    text,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling email request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, m.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody bytes.Buffer
		_, _ = errBody.ReadFrom(resp.Body)
		log.Warn().Int("status", resp.StatusCode).Str("body", errBody.String()).Msg("mail: API error")
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	return nil
}
