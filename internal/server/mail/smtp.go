package mail

import (
	"context"

	gomail "gopkg.in/gomail.v2"
)

// SMTPNotifier delivers mail through an SMTP relay.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	// gomail has no context support; honor cancellation before dialing
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return n.dialer.DialAndSend(m)
}
