// Package notify delivers the post-creation customer notifications: a
// confirmation email and a WhatsApp template message.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"github.com/VershaDubey/Hindalco-Versha/internal/config"
	"github.com/VershaDubey/Hindalco-Versha/internal/logger"
)

// CaseEmail carries the values embedded into the confirmation template.
type CaseEmail struct {
	To          string
	Reference   string
	Name        string
	Address     string
	ServiceTime string
	Phone       string
	Email       string
}

var emailTmpl = template.Must(template.New("caseEmail").Parse(`<html>
<body>
<p>Dear {{if .Name}}{{.Name}}{{else}}Customer{{end}},</p>
<p>Your service request <b>{{.Reference}}</b> has been registered.</p>
<table>
<tr><td>Service address</td><td>{{.Address}}</td></tr>
<tr><td>Scheduled time</td><td>{{.ServiceTime}}</td></tr>
<tr><td>Contact number</td><td>{{.Phone}}</td></tr>
<tr><td>Email</td><td>{{.Email}}</td></tr>
</table>
<p>Our technician will reach out before the visit.</p>
<p>Regards,<br/>Customer Care</p>
</body>
</html>`))

type Mailer struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, log: logger.New()}
}

// Send renders the confirmation template and delivers it over SMTP.
func (m *Mailer) Send(msg CaseEmail) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := emailTmpl.Execute(&body, msg); err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	subject := fmt.Sprintf("Service request %s registered", msg.Reference)

	var mail strings.Builder
	mail.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	mail.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	mail.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	mail.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	mail.WriteString("\r\n")
	mail.Write(body.Bytes())

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(mail.String())); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}

	m.log.WithField("component", "mailer").
		WithField("to", msg.To).
		WithField("case_ref", msg.Reference).
		Info("confirmation email sent")
	return nil
}

// FormatServiceTime renders an ISO 8601 visit date for the customer-facing
// templates. A value that does not parse passes through unchanged.
func FormatServiceTime(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006, 03:04 PM")
}
