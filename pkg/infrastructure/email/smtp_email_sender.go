// pkg/infrastructure/email/smtp_email_sender.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// SMTPConfig configuración para SMTP
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPEmailSender implementa ports.EmailSender usando SMTP
type SMTPEmailSender struct {
	config    SMTPConfig
	templates map[string]*template.Template
	siteName  string
}

// NewSMTPEmailSender crea una nueva instancia del enviador SMTP
func NewSMTPEmailSender(config SMTPConfig, siteName string) *SMTPEmailSender {
	templates := make(map[string]*template.Template)

	// Template para el correo de bienvenida con credenciales iniciales
	templates["welcome"] = template.Must(template.New("welcome").Parse(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<title>Bienvenido</title>
		</head>
		<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2>Hola {{.FirstName}}, bienvenido a {{.SiteName}}</h2>
			<p>Tu cuenta de empleado fue creada. Estas son tus credenciales iniciales:</p>
			<ul>
				<li>Usuario: <strong>{{.Username}}</strong></li>
				<li>Contraseña: <strong>{{.Password}}</strong></li>
			</ul>
			<p>Por favor cambia tu contraseña después del primer ingreso.</p>
		</body>
		</html>
	`))

	return &SMTPEmailSender{
		config:    config,
		templates: templates,
		siteName:  siteName,
	}
}

// SendWelcomeEmail envía el correo de bienvenida con las credenciales
func (s *SMTPEmailSender) SendWelcomeEmail(to, firstName, username, password string) error {
	data := struct {
		FirstName string
		Username  string
		Password  string
		SiteName  string
	}{
		FirstName: firstName,
		Username:  username,
		Password:  password,
		SiteName:  s.siteName,
	}

	var body bytes.Buffer
	if err := s.templates["welcome"].Execute(&body, data); err != nil {
		return fmt.Errorf("error renderizando template de bienvenida: %v", err)
	}

	return s.send(to, fmt.Sprintf("Bienvenido a %s", s.siteName), body.String())
}

func (s *SMTPEmailSender) send(to, subject, htmlBody string) error {
	headers := []string{
		fmt.Sprintf("From: %s", s.config.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	return smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(message))
}
