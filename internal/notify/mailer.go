package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig holds the SMTP server and sender identity.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Configured reports whether enough settings are present to deliver mail.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != 0 && c.Username != "" && c.Password != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer renders HTML templates and delivers them over SMTP with STARTTLS.
type Mailer struct {
	cfg       SMTPConfig
	templates map[Kind]*template.Template
	send      sendFunc
}

// NewMailer parses the message templates.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{
		cfg: cfg,
		templates: map[Kind]*template.Template{
			KindTrainerAccepted: template.Must(template.New("accepted").Parse(layoutHTML + acceptedHTML)),
			KindTrainerRejected: template.Must(template.New("rejected").Parse(layoutHTML + rejectedHTML)),
			KindSlotCancelled:   template.Must(template.New("cancelled").Parse(layoutHTML + cancelledHTML)),
		},
		send: smtp.SendMail,
	}
}

// Send renders msg and hands it to the SMTP server.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.cfg.Configured() {
		return errors.New("smtp credentials not fully configured")
	}
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := m.Render(msg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := m.send(addr, auth, m.cfg.From, msg.To, m.compose(msg, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Render executes the template of msg.Kind.
func (m *Mailer) Render(msg Message) (string, error) {
	tpl, ok := m.templates[msg.Kind]
	if !ok {
		return "", fmt.Errorf("unknown message kind %q", msg.Kind)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, msg.Data); err != nil {
		return "", fmt.Errorf("render %s: %w", msg.Kind, err)
	}
	return buf.String(), nil
}

func (m *Mailer) compose(msg Message, htmlBody string) []byte {
	var b bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&b, format, a...) }

	from := m.cfg.From
	if name := strings.TrimSpace(m.cfg.FromName); name != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), m.cfg.From)
	}

	write("From: %s\r\n", from)
	// bulk notices must not disclose other subscribers
	if len(msg.To) == 1 {
		write("To: %s\r\n", msg.To[0])
	} else {
		write("To: undisclosed-recipients:;\r\n")
	}
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("\r\n")
	write("%s\r\n", htmlBody)
	return b.Bytes()
}

const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; margin: 0; padding: 0; }
      section { max-width: 42rem; margin: 0 auto; padding: 2rem 1.5rem; background: #ffffff; }
      h2 { color: #4a5568; }
      p { color: #718096; margin-top: 0.5rem; }
    </style>
  </head>
  <body>
    <section>
      <h2>Hi {{.ReceiverName}},</h2>
      {{template "content" .}}
      <p style="margin-top: 2rem">Thanks,<br />FitSync Team</p>
    </section>
  </body>
</html>{{end}}`

const acceptedHTML = `{{define "content"}}
      <p>Your application to become a FitSync trainer has been accepted. Welcome to the team!</p>
      {{if .Body}}<p>{{.Body}}</p>{{end}}
{{end}}{{template "layout" .}}`

const rejectedHTML = `{{define "content"}}
      <p>Thank you for applying to become a FitSync trainer. Unfortunately your application was not accepted this time.</p>
      {{if .Body}}<p>{{.Body}}</p>{{end}}
{{end}}{{template "layout" .}}`

const cancelledHTML = `{{define "content"}}
      <p>Trainer: {{.Trainer}}</p>
      <p>Slot: {{.Slot}}</p>
      <p>{{.Body}}</p>
{{end}}{{template "layout" .}}`
