// pkg/api/http/server/server.go
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"

	"employee-microservice-go/pkg/api/http/handlers"
	"employee-microservice-go/pkg/application/ports"
	"employee-microservice-go/pkg/application/services"
	"employee-microservice-go/pkg/infrastructure/auth"
	"employee-microservice-go/pkg/infrastructure/persistence/postgres"
)

// LoadConfig carga la configuración desde archivos o variables de entorno
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Para leer variables de entorno
	viper.AutomaticEnv()
	viper.SetEnvPrefix("")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Valores por defecto
	viper.SetDefault("server.port", "3004")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("auth.token_expiration", "24h")
	viper.SetDefault("rabbitmq.exchange", "employee.events")
	viper.SetDefault("rabbitmq.queue", "employee-worker")

	// Intentar leer del archivo de configuración
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No se encontró archivo de configuración, usando variables de entorno")
		} else {
			return err
		}
	}

	// Validar configuración requerida
	requiredKeys := []string{
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.name",
		"auth.jwt_secret",
	}

	for _, key := range requiredKeys {
		if !viper.IsSet(key) {
			return fmt.Errorf("falta configuración requerida: %s", key)
		}
	}

	return nil
}

// ConnectDB establece la conexión a la base de datos
func ConnectDB() (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		viper.GetString("database.host"),
		viper.GetString("database.port"),
		viper.GetString("database.user"),
		viper.GetString("database.password"),
		viper.GetString("database.name"),
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(viper.GetInt("database.max_open_conns"))
	db.SetMaxIdleConns(viper.GetInt("database.max_idle_conns"))
	db.SetConnMaxLifetime(viper.GetDuration("database.conn_max_lifetime"))

	log.Println("Conexión a base de datos establecida con éxito")
	return db, nil
}

// Services agrupa los servicios de aplicación ya cableados
type Services struct {
	Employee services.EmployeeService
	Vaccine  services.VaccineService
	Auth     services.AuthService
}

// InitializeServices inicializa repositorios y servicios
func InitializeServices(db *sqlx.DB, events ports.EventPublisher) *Services {
	// Inicializar repositorios
	employeeRepo := postgres.NewEmployeeRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	userRoleRepo := postgres.NewUserRoleRepository(db)
	vaccineRepo := postgres.NewVaccineRepository(db)
	vaccinationRepo := postgres.NewEmployeeVaccinationRepository(db)

	// Inicializar servicios
	jwtService := auth.NewJWTService(
		viper.GetString("auth.jwt_secret"),
		viper.GetDuration("auth.token_expiration"),
	)

	employeeService := services.NewEmployeeService(
		employeeRepo,
		personRepo,
		userRepo,
		roleRepo,
		userRoleRepo,
		vaccineRepo,
		vaccinationRepo,
		events,
	)

	return &Services{
		Employee: employeeService,
		Vaccine:  services.NewVaccineService(vaccineRepo),
		Auth:     services.NewAuthService(userRepo, userRoleRepo, employeeRepo, jwtService),
	}
}

// SetupRouter configura el router con todos los handlers
func SetupRouter(svcs *Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	authHandler := handlers.NewAuthHandler(svcs.Auth)
	employeeHandler := handlers.NewEmployeeHandler(svcs.Employee)
	vaccineHandler := handlers.NewVaccineHandler(svcs.Vaccine)

	apiRouter := router.PathPrefix("/api").Subrouter()

	// Login público
	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	authHandler.RegisterRoutes(authRouter)

	// Rutas protegidas por bearer token
	employeeRouter := apiRouter.PathPrefix("/employees").Subrouter()
	employeeRouter.Use(authHandler.Middleware)
	employeeHandler.RegisterRoutes(employeeRouter)

	vaccineRouter := apiRouter.PathPrefix("/vaccines").Subrouter()
	vaccineRouter.Use(authHandler.Middleware)
	vaccineHandler.RegisterRoutes(vaccineRouter)

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}

// loggingMiddleware es un middleware para registrar todas las peticiones HTTP
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}
