// Package email provides email sending adapters for operator notifications.
package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/ports"
)

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // sender email address
	FromName string // sender display name
	Timeout  time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() SMTPConfig {
	return SMTPConfig{
		Host:     "localhost",
		Port:     25,
		From:     "noreply@localhost",
		FromName: "SeatSync",
		Timeout:  30 * time.Second,
	}
}

// SMTPSender implements ports.EmailSender using SMTP.
type SMTPSender struct {
	config SMTPConfig
}

// NewSMTPSender creates a new SMTP email sender.
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

// Send sends an email via SMTP.
func (s *SMTPSender) Send(ctx context.Context, msg ports.EmailMessage) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.TextBody)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{msg.To}, buf.Bytes()); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// SendSeatDivergenceAlert notifies an operator that local seat records are
// stale relative to the external subscription.
func (s *SMTPSender) SendSeatDivergenceAlert(ctx context.Context, to, providerID string, planType plan.Type, subscribedTo int, cause error) error {
	return s.Send(ctx, divergenceMessage(to, providerID, planType, subscribedTo, cause))
}

// divergenceMessage builds the alert email body.
func divergenceMessage(to, providerID string, planType plan.Type, subscribedTo int, cause error) ports.EmailMessage {
	body := fmt.Sprintf(`Seat reconciliation needs attention.

The billing subscription for provider %s (plan %s) was set to %d seats,
but the local seat records could not be updated afterwards:

    %v

Local AllocatedSeats/PurchasedSeats are stale until corrected manually.
`, providerID, planType, subscribedTo, cause)

	return ports.EmailMessage{
		To:       to,
		Subject:  fmt.Sprintf("[seatsync] seat records stale for provider %s", providerID),
		TextBody: body,
	}
}

// Ensure interface compliance.
var _ ports.EmailSender = (*SMTPSender)(nil)
