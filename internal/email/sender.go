package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Sender delivers a rendered email to a recipient.
type Sender interface {
	Send(ctx context.Context, to string, msg Message) error
}

// LogSender logs emails instead of delivering them. Used in development and
// when no provider is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new log-backed sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements Sender
func (s *LogSender) Send(ctx context.Context, to string, msg Message) error {
	s.logger.Info("Would send email",
		zap.String("to", to),
		zap.String("subject", msg.Subject),
		zap.String("content", msg.Text))
	return nil
}

const resendEndpoint = "https://api.resend.com/emails"

// ResendSender delivers emails through the Resend HTTP API.
type ResendSender struct {
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewResendSender creates a new Resend-backed sender
func NewResendSender(apiKey, from string, timeout time.Duration, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		apiKey: apiKey,
		from:   from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

// Send implements Sender
func (s *ResendSender) Send(ctx context.Context, to string, msg Message) error {
	body, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{to},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("Email provider returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("to", to))
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", msg.Subject))
	return nil
}
