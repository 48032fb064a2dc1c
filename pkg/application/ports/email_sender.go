package ports

// EmailSender envía los correos transaccionales del servicio.
type EmailSender interface {
	SendWelcomeEmail(to, firstName, username, password string) error
}
