// Package mail delivers transactional emails over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

const resetSubject = "Password reset"

var resetTemplate = template.Must(template.New("reset").Parse(`
<h2>Password reset</h2>
<p>You asked to reset the password of your time clock account.</p>
<p>Use the button below to choose a new password:</p>
<p>
  <a href="{{.Link}}" style="display:inline-block;padding:12px 20px;background:#16a34a;color:#ffffff;text-decoration:none;border-radius:6px;font-weight:600;">
    Reset password
  </a>
</p>
<p>This link expires in <strong>{{.Expiry}}</strong>.</p>
<p>If you did not request this, ignore this email.</p>
`))

// Config holds SMTP credentials and the sender identity.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	// LinkTTL is how long the reset link stays valid; shown to the recipient.
	LinkTTL  time.Duration
}

// SMTPMailer sends emails through an authenticated SMTP server.
// Port 465 uses implicit TLS, other ports upgrade with STARTTLS.
type SMTPMailer struct {
	cfg  Config
	send func(*gomail.Message) error
	log  zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) *SMTPMailer {
	if cfg.LinkTTL <= 0 {
		cfg.LinkTTL = time.Hour
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{
		cfg:  cfg,
		send: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		log:  log,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.resetMessage(to, resetLink)
	if err != nil {
		return err
	}
	if err := m.send(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m.log.Debug().Str("to", to).Msg("password reset email sent")
	return nil
}

func (m *SMTPMailer) resetMessage(to, resetLink string) (*gomail.Message, error) {
	var body bytes.Buffer
	err := resetTemplate.Execute(&body, struct{ Link, Expiry string }{resetLink, humanDuration(m.cfg.LinkTTL)})
	if err != nil {
		return nil, fmt.Errorf("render reset email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.Username, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", "Reset your password: "+resetLink)
	msg.AddAlternative("text/html", body.String())
	return msg, nil
}

// humanDuration renders whole hours or minutes, e.g. "1 hour", "30 minutes".
func humanDuration(d time.Duration) string {
	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s", unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	if d >= time.Hour && d%time.Hour == 0 {
		return plural(int64(d/time.Hour), "hour")
	}
	if d >= time.Minute {
		return plural(int64(d/time.Minute), "minute")
	}
	return d.String()
}

// LogMailer writes emails to the log instead of sending them. Used when no
// SMTP credentials are configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, resetLink string) error {
	m.log.Info().
		Str("to", to).
		Str("reset_link", resetLink).
		Msg("smtp disabled, password reset email not sent")
	return nil
}
