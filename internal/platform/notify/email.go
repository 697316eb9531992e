package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/ermanaknc/auth-api/internal/platform/config"
)

// Mailer delivers one-time codes over SMTP. Delivery is part of the
// issuance contract: a code whose mail was not accepted must never be
// persisted, so send errors are surfaced untouched to the caller.
type Mailer struct {
	client *mail.Client
	from   string
}

func NewMailer(cfg config.SMTP) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) SendVerificationCode(ctx context.Context, to, code string) error {
	body := fmt.Sprintf(`<h1>Verification Code</h1><p>Your verification code is %s</p>`, code)
	return m.send(ctx, to, "Verification Code", body)
}

func (m *Mailer) SendResetCode(ctx context.Context, to, code string) error {
	body := fmt.Sprintf(`<h1>Forgot Password Code</h1><p>Your forgot password code is %s</p>`, code)
	return m.send(ctx, to, "Forgot Password Code", body)
}
