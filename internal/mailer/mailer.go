package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Sender delivers outbound mail. Delivery failures must surface
// synchronously so callers can roll back state that depends on the
// message arriving (the password-reset token in particular). Senders
// are not assumed idempotent and are never retried here.
type Sender interface {
	SendPasswordReset(ctx context.Context, address string, resetURL string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("sender address is required")
	}

	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, address string, resetURL string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(address); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("Password reset - DevBlog")
	msg.SetBodyString(mail.TypeTextHTML, resetBody(resetURL))

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func resetBody(resetURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password reset</h2>
  <p>You requested a password reset for your DevBlog account.</p>
  <p><a href="%[1]s">Reset your password</a></p>
  <p>Or copy this link into your browser:</p>
  <p>%[1]s</p>
  <p style="color: #999; font-size: 12px;">
    The link is valid for 1 hour.<br>
    If you did not request a reset, ignore this message.
  </p>
</div>`, resetURL)
}
