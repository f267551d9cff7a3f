package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer delivers outbound mail. The OTP service treats delivery as
// fire-and-forget; a send failure never rolls back the issued record.
type Mailer interface {
	Send(to, subject, body string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s", to, m.cfg.From, subject, body))
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}

// NoOp is used in development when no SMTP host is configured.
type NoOp struct{}

func (NoOp) Send(to, subject, body string) error {
	return nil
}
