package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration and sends OTP emails directly.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// SendOTP renders the OTP email and sends it synchronously.
func (m *Mailgun) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	subject, text, html, err := RenderOTPEmail(code, ttl)
	if err != nil {
		return err
	}
	return m.Send(ctx, to, subject, text, html)
}

var _ Sender = (*Mailgun)(nil)
var _ Sender = (*QueueSender)(nil)
