// cmd/worker/main.go
package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"employee-microservice-go/pkg/api/http/server"
	"employee-microservice-go/pkg/application/ports"
	"employee-microservice-go/pkg/application/services"
	"employee-microservice-go/pkg/infrastructure/email"
	"employee-microservice-go/pkg/infrastructure/messaging/rabbitmq"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("🚀 Iniciando Employee Microservice Worker...")

	// Cargar configuración (la misma del API)
	if err := server.LoadConfig(); err != nil {
		log.Fatalf("❌ Error al cargar la configuración: %v", err)
	}
	log.Println("✅ Configuración cargada exitosamente")

	// Conectar a RabbitMQ; el worker no tiene nada que hacer sin broker
	eventBus, err := rabbitmq.NewRabbitMQEventBus(
		viper.GetString("rabbitmq.url"),
		viper.GetString("rabbitmq.exchange"),
		viper.GetString("rabbitmq.queue"),
	)
	if err != nil {
		log.Fatalf("❌ Error conectando a RabbitMQ: %v", err)
	}
	defer eventBus.Close()
	log.Println("✅ Conexión a RabbitMQ establecida")

	// Configurar servicio de email
	emailSender := setupEmailService()
	log.Println("✅ Servicio de email configurado")

	// Suscripciones
	if err := eventBus.Subscribe(services.EventEmployeeCreated, handleEmployeeCreated(emailSender)); err != nil {
		log.Fatalf("❌ Error suscribiendo a %s: %v", services.EventEmployeeCreated, err)
	}
	if err := eventBus.Subscribe(services.EventEmployeeUpdated, logEmployeeEvent(services.EventEmployeeUpdated)); err != nil {
		log.Fatalf("❌ Error suscribiendo a %s: %v", services.EventEmployeeUpdated, err)
	}
	if err := eventBus.Subscribe(services.EventEmployeeDeleted, logEmployeeEvent(services.EventEmployeeDeleted)); err != nil {
		log.Fatalf("❌ Error suscribiendo a %s: %v", services.EventEmployeeDeleted, err)
	}
	log.Println("✅ Worker suscrito a eventos de empleado")

	// Esperar señal de terminación
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	sig := <-shutdownChan
	log.Printf("🛑 Señal de terminación recibida: %v", sig)

	log.Println("👋 Worker terminado correctamente")
}

// handleEmployeeCreated envía el correo de bienvenida con las
// credenciales iniciales del empleado recién creado
func handleEmployeeCreated(emailSender ports.EmailSender) func([]byte) error {
	return func(body []byte) error {
		var event services.EmployeeEvent
		if err := json.Unmarshal(body, &event); err != nil {
			// Payload malformado: no reencolar
			log.Printf("⚠️ Evento employee.created inválido: %v", err)
			return nil
		}

		log.Printf("📨 Empleado creado: %s (dni %d)", event.Email, event.DNI)

		if err := emailSender.SendWelcomeEmail(event.Email, event.FirstName, event.Username, event.InitialPassword); err != nil {
			log.Printf("⚠️ Error enviando correo de bienvenida a %s: %v", event.Email, err)
			return err
		}

		return nil
	}
}

// logEmployeeEvent registra los eventos que no disparan acciones
func logEmployeeEvent(routingKey string) func([]byte) error {
	return func(body []byte) error {
		var event services.EmployeeEvent
		if err := json.Unmarshal(body, &event); err != nil {
			log.Printf("⚠️ Evento %s inválido: %v", routingKey, err)
			return nil
		}

		log.Printf("📨 Evento %s: empleado %s", routingKey, event.EmployeeID)
		return nil
	}
}

// setupEmailService configura el servicio de envío de emails
func setupEmailService() *email.SMTPEmailSender {
	emailConfig := email.SMTPConfig{
		Host:     viper.GetString("smtp.host"),
		Port:     viper.GetInt("smtp.port"),
		Username: viper.GetString("smtp.username"),
		Password: viper.GetString("smtp.password"),
		From:     viper.GetString("smtp.from"),
	}

	return email.NewSMTPEmailSender(emailConfig, viper.GetString("site.name"))
}
