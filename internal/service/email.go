package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/sethvargo/go-retry"
)

// emailMaxRetries bounds delivery attempts (1 initial + 2 retries). Delivery
// is the only automatically retried backend call in the app.
const emailMaxRetries = 2

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// SendMagicLinkEmail delivers the one-time sign-in link.
func (s *EmailService) SendMagicLinkEmail(ctx context.Context, email, token string) error {
	magicURL := fmt.Sprintf("%s/auth/magic-link/%s", s.appURL, token)
	subject, body := magicLinkEmailTemplate(magicURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "magic_link", "to", email, "subject", subject, "url", magicURL)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	err := s.sendWithRetry(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "magic_link", "to", email)
	}
	return err
}

// sendWithRetry retries transient delivery failures with fibonacci backoff,
// capped at emailMaxRetries.
func (s *EmailService) sendWithRetry(ctx context.Context, params *resend.SendEmailRequest) error {
	backoff := retry.WithMaxRetries(emailMaxRetries, retry.NewFibonacci(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := s.client.Emails.SendWithContext(ctx, params)
		if err != nil {
			slog.Warn("email delivery attempt failed", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
