package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendWelcome emails a new lead about the program they showed interest in.
func (s *EmailSender) SendWelcome(to, name, program string) error {
	data := WelcomeEmailData{
		Name:    name,
		Program: program,
	}

	tmplPath := filepath.Join("templates", "welcome.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("reading email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Welcome, %s! Your leadership journey starts here", name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending SMTP email: %w", err)
	}

	return nil
}
