package emailControllers

import (
	"fmt"
	"strconv"

	"github.com/shopall-store/storefront-api/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not configured")
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}, nil
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// SendPasswordReset implements auth.Mailer.
func (m *Mailer) SendPasswordReset(to, token string) error {
	body := fmt.Sprintf(
		"<p>We received a request to reset your SHOPALL password.</p>"+
			"<p>Your reset token is: <strong>%s</strong></p>"+
			"<p>The token expires in one hour. If you did not request this, ignore this email.</p>",
		token,
	)
	return m.send(to, "Reset your SHOPALL password", body)
}
