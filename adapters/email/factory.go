package email

import (
	"fmt"

	"github.com/seatsync/seatsync/ports"
)

// NewSender creates an email sender for the configured mode.
func NewSender(mode string, config SMTPConfig) (ports.EmailSender, error) {
	switch mode {
	case "smtp":
		if config.Host == "" {
			return nil, fmt.Errorf("SMTP host is required")
		}
		return NewSMTPSender(config), nil

	case "mock":
		return NewMockSender(), nil

	case "none", "":
		return NewNoopSender(), nil

	default:
		return nil, fmt.Errorf("unknown email provider: %s", mode)
	}
}
