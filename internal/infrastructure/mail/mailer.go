// Package mail envía los correos transaccionales de la API.
package mail

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/imprentacamiri/imprenta-api/pkg/config"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
)

const resetSubject = "Restablecer contraseña - Imprenta Camiri"

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer envía correos por SMTP con gomail.
type SMTPMailer struct {
	dialer dialer
	from   string
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendPasswordReset envía el enlace de restablecimiento.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(resetMessage(m.from, to, name, link)); err != nil {
		return fmt.Errorf("mail: enviar restablecimiento: %w", err)
	}
	return nil
}

func resetMessage(from, to, name, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nPara restablecer tu contraseña ingresa a:\n%s\n\nSi no lo solicitaste, ignora este mensaje.\n",
		name, link))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>Hola %s,</p><p>Para restablecer tu contraseña haz clic <a href="%s">aquí</a>.</p><p>Si no lo solicitaste, ignora este mensaje.</p>`,
		html.EscapeString(name), html.EscapeString(link)))
	return msg
}

// LogMailer registra el enlace en el log en lugar de enviarlo (desarrollo, sin SMTP).
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de log.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	m.log.Warn().Str("to", to).Str("link", link).Msg("SMTP no configurado: enlace de restablecimiento solo en log")
	return nil
}
