package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/Sourabh6826/school-erp/app/config"
)

// Send delivers a plain-text message via the configured SMTP server. It is a
// no-op when SMTP credentials are not set, so development environments run
// without a mail server.
func Send(subject, body string) error {
	cfg := config.GetSMTP()
	if cfg.Username == "" || cfg.To == "" {
		return nil
	}

	e := email.NewEmail()
	e.From = cfg.From
	e.To = []string{cfg.To}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return e.Send(addr, smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host))
}
