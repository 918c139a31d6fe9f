// Package notify sends best-effort review notification mail. A zero-host
// configuration disables sending entirely.
package notify

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/nookplot/gateway/pkg/config"
)

type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		user:     cfg.SMTP.User,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
	}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

// ReviewSubmitted implements hostedcode.ReviewNotifier.
func (m *Mailer) ReviewSubmitted(email, projectName, commitID, verdict string) error {
	if !m.Enabled() {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", fmt.Sprintf("[%s] commit %.8s reviewed: %s", projectName, commitID, verdict))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Commit %s in project %s received a review: %s\n", commitID, projectName, verdict))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	return dialer.DialAndSend(msg)
}
