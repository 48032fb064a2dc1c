// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	// Driver de PostgreSQL
	_ "github.com/lib/pq"

	"employee-microservice-go/pkg/api/http/server"
	"employee-microservice-go/pkg/application/ports"
	"employee-microservice-go/pkg/infrastructure/messaging/rabbitmq"
)

const (
	// Timeouts del servidor HTTP
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second

	// Timeout para shutdown graceful
	ShutdownTimeout = 30 * time.Second
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("🚀 Iniciando Employee Microservice API Server...")

	// Cargar configuración
	if err := server.LoadConfig(); err != nil {
		log.Fatalf("❌ Error al cargar la configuración: %v", err)
	}
	log.Println("✅ Configuración cargada exitosamente")

	// Conectar a la base de datos
	db, err := server.ConnectDB()
	if err != nil {
		log.Fatalf("❌ Error al conectar a la base de datos: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("⚠️ Error cerrando conexión a BD: %v", err)
		} else {
			log.Println("✅ Conexión a base de datos cerrada")
		}
	}()
	log.Println("✅ Conexión a base de datos establecida")

	// Conectar el bus de eventos; sin broker el API sigue operando,
	// sólo deja de publicar
	events := setupEventBus()

	// Inicializar servicios de aplicación
	svcs := server.InitializeServices(db, events)
	log.Println("✅ Servicios de aplicación inicializados")

	// Configurar router HTTP
	router := server.SetupRouter(svcs)
	log.Println("✅ Router HTTP configurado")

	// Configurar servidor HTTP
	httpServer := &http.Server{
		Addr:         ":" + viper.GetString("server.port"),
		Handler:      router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}

	// Canal para shutdown graceful
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Iniciar servidor HTTP
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("🌐 API Server escuchando en puerto %s", viper.GetString("server.port"))
		log.Printf("🔍 Health check disponible en: http://localhost:%s/health", viper.GetString("server.port"))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("error en servidor HTTP: %v", err)
		}
	}()

	// Esperar señal de terminación o error del servidor
	select {
	case err := <-serverErrors:
		log.Fatalf("❌ Error crítico del servidor: %v", err)
	case sig := <-shutdownChan:
		log.Printf("🛑 Señal de terminación recibida: %v", sig)

		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("⚠️ Error durante shutdown graceful: %v", err)
		}
	}

	log.Println("👋 API Server terminado correctamente")
}

// setupEventBus conecta a RabbitMQ si hay URL configurada
func setupEventBus() ports.EventPublisher {
	url := viper.GetString("rabbitmq.url")
	if url == "" {
		log.Println("⚠️ RabbitMQ no configurado, eventos deshabilitados")
		return nil
	}

	eventBus, err := rabbitmq.NewRabbitMQEventBus(
		url,
		viper.GetString("rabbitmq.exchange"),
		viper.GetString("rabbitmq.queue"),
	)
	if err != nil {
		log.Printf("⚠️ Error conectando a RabbitMQ, eventos deshabilitados: %v", err)
		return nil
	}

	log.Println("✅ Conexión a RabbitMQ establecida")
	return eventBus
}
