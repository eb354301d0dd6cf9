package services

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, name string) error
}

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender mailSender
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	return &emailService{
		sender: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

var welcomeHTML = template.Must(template.New("welcome").Parse(`<h2>Welcome to TaskMate, {{.Name}}!</h2>
<p>Your account has been created. Add your first task and we will keep track of the rest.</p>
<p>You can ask for an AI productivity report at any time from the dashboard.</p>
<p>Best regards,<br>The TaskMate Team</p>
`))

const welcomeText = `Welcome to TaskMate, %s!

Your account has been created. Add your first task and we will keep track of the rest.
You can ask for an AI productivity report at any time from the dashboard.

The TaskMate Team
`

// welcomeMessage builds the multipart welcome mail; the name is escaped in
// the HTML part only.
func welcomeMessage(from, to, name string) (*gomail.Message, error) {
	var html bytes.Buffer
	if err := welcomeHTML.Execute(&html, struct{ Name string }{name}); err != nil {
		return nil, fmt.Errorf("render welcome email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to TaskMate!")
	m.SetBody("text/plain", fmt.Sprintf(welcomeText, name))
	m.AddAlternative("text/html", html.String())
	return m, nil
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	m, err := welcomeMessage(s.from, email, name)
	if err != nil {
		return err
	}
	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
