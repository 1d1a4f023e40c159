package utils

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer sends transactional email through SendGrid
type Mailer struct {
	APIKey    string
	FromName  string
	FromEmail string
	Logger    *zap.Logger
}

// Enabled reports whether an API key is configured
func (m *Mailer) Enabled() bool {
	return m != nil && m.APIKey != ""
}

// SendEmail sends an email using SendGrid
func (m *Mailer) SendEmail(ctx context.Context, toName, toEmail, subject, textContent, htmlContent string) error {
	if !m.Enabled() {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(m.APIKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending email to %s: %w", toEmail, err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d, body: %s", response.StatusCode, response.Body)
	}

	if m.Logger != nil {
		m.Logger.Info("Email sent", zap.String("to", toEmail), zap.Int("status", response.StatusCode))
	}
	return nil
}
