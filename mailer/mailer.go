// Package mailer hides email delivery behind a small gateway so the alert
// pipeline can treat sending as a best-effort side channel.
package mailer

import (
	"gopkg.in/gomail.v2"
	"k8s.io/klog/v2"
)

// Mailer delivers one HTML email. Implementations report failure through
// the error return and must never panic; callers are free to ignore the
// outcome entirely.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends through a single SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		klog.Warningf("email to %s failed: %v", to, err)
		return err
	}
	klog.V(2).Infof("email sent to %s: %s", to, subject)
	return nil
}
