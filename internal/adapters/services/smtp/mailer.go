// Package smtp sends account mails over plain SMTP.
package smtp

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/valueobject/mails"
	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/errorx"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendMail delivers a single mail synchronously. gomail has no context
// support, so cancellation is only checked before dialing.
func (m *Mailer) SendMail(ctx context.Context, payload mails.Payload) error {
	const op = "smtp.Mailer.SendMail"

	if err := ctx.Err(); err != nil {
		return errorx.Wrap(err, op)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", payload.To)
	msg.SetHeader("Subject", payload.Subject)
	msg.SetBody("text/html", payload.HTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errorx.Wrap(err, op)
	}

	return nil
}
