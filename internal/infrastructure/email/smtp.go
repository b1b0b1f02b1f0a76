package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/orders/backend/internal/infrastructure/config"
)

// SMTPSender implements Sender over net/smtp with PLAIN auth and STARTTLS
// when the server offers it.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPSender creates an SMTP-backed sender from configuration
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

var _ Sender = (*SMTPSender)(nil)

// Send delivers the message via SMTP
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body := buildMessage(s.from, msg)
	if err := smtp.SendMail(s.addr, s.auth, s.from, msg.To, body); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// buildMessage renders RFC 5322 headers and body. Subjects are Q-encoded
// because they are almost always Russian.
func buildMessage(from string, msg Message) []byte {
	var b strings.Builder

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(msg.Text)
		return []byte(b.String())
	}

	const boundary = "=_orders_boundary"
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + boundary + "\"\r\n\r\n")
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Text + "\r\n")
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(msg.HTML + "\r\n")
	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}
