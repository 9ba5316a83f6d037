package email

import (
	"bytes"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"
)

var otpTemplate = template.Must(template.New("otp").Parse(`
<p>Hi {{.Name}},</p>
<p>Your Kamau Nepal verification code is:</p>
<h2>{{.Code}}</h2>
<p>The code expires in 10 minutes. If you did not request it, ignore this email.</p>
`))

// SMTPProvider sends mail through an SMTP relay via gomail.
type SMTPProvider struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(cfg Config) *SMTPProvider {
	return &SMTPProvider{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (p *SMTPProvider) SendOTP(to, name, code string) error {
	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, map[string]string{
		"Name": name,
		"Code": code,
	}); err != nil {
		return fmt.Errorf("failed to render otp email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.FromEmail, p.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Kamau Nepal verification code")
	m.SetBody("text/html", body.String())

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}
