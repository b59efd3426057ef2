// Package mailer is a thin client for the Brevo transactional email API.
// Sending is best-effort: callers log failures and never roll back the
// action that triggered the email.
package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eventhub-backend/internal/config"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

type Client struct {
	apiKey      string
	senderName  string
	senderEmail string
	httpClient  *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		apiKey:      cfg.BrevoKey,
		senderName:  cfg.SenderName,
		senderEmail: cfg.SenderEmail,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type emailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type emailRequest struct {
	Sender      emailAddress   `json:"sender"`
	To          []emailAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// SendRegistrationConfirmation emails the registrant their ticket number.
// A missing API key disables sending silently, mirroring local development.
func (c *Client) SendRegistrationConfirmation(name, email, eventTitle, ticketNumber string) error {
	subject := fmt.Sprintf("Registration confirmed: %s", eventTitle)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your registration for <strong>%s</strong> is confirmed.</p><p>Ticket number: <strong>%s</strong></p>",
		name, eventTitle, ticketNumber,
	)
	return c.send(emailRequest{
		Sender:      emailAddress{Name: c.senderName, Email: c.senderEmail},
		To:          []emailAddress{{Name: name, Email: email}},
		Subject:     subject,
		HTMLContent: body,
	})
}

func (c *Client) send(req emailRequest) error {
	if c.apiKey == "" {
		return nil
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, brevoURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	httpReq.Header.Set("api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call Brevo API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("brevo API returned status %d", resp.StatusCode)
	}
	return nil
}
