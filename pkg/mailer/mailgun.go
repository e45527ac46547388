package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers the survey notification emails (welcome, submission
// receipts) rendered by the email worker.
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	timeout time.Duration
}

// NewMailgun builds a reusable client. timeout bounds each Send call; zero
// leaves the caller's context as the only bound.
func NewMailgun(domain, apiKey, sender string, timeout time.Duration) *Mailgun {
	return &Mailgun{
		client:  mg.NewMailgun(domain, apiKey),
		sender:  sender,
		timeout: timeout,
	}
}

// Send delivers one message. html is optional; when set it becomes the HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	_, _, err := m.client.Send(ctx, msg)
	return err
}
