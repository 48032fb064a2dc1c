package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"employee-microservice-go/pkg/application/services"
	"employee-microservice-go/pkg/domain/apperrors"
	"employee-microservice-go/pkg/domain/repositories"
)

// Response estructura estándar para respuestas HTTP
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondWithJSON envía una respuesta JSON estándar al cliente
func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError envía una respuesta de error estándar
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// respondWithServiceError mapea los errores de negocio a códigos HTTP;
// cada precondición fallida llega al cliente con su propio código de
// error, nunca una falla genérica.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmployeeNotFound),
		errors.Is(err, apperrors.ErrVaccineNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrDNIExists),
		errors.Is(err, apperrors.ErrEmailExists),
		errors.Is(err, apperrors.ErrInvalidDNI),
		errors.Is(err, apperrors.ErrRoleNotFound):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// EmployeeHandler maneja las peticiones HTTP de empleados
type EmployeeHandler struct {
	employeeService services.EmployeeService
}

// NewEmployeeHandler crea una nueva instancia del handler de empleados
func NewEmployeeHandler(employeeService services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// RegisterRoutes registra las rutas de empleados en el router
func (h *EmployeeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.ListEmployees).Methods("GET")
	router.HandleFunc("", h.CreateEmployee).Methods("POST")
	router.HandleFunc("/me", h.GetMyInformation).Methods("GET")
	router.HandleFunc("/{dni}", h.UpdateEmployee).Methods("PUT")
	router.HandleFunc("/{dni}/vaccinations", h.RegisterVaccination).Methods("POST")
}

// parseEmployeeFilters arma los filtros del listado desde el query
// string; un parámetro ausente o vacío no filtra.
func parseEmployeeFilters(r *http.Request) *repositories.EmployeeFilters {
	query := r.URL.Query()

	filters := &repositories.EmployeeFilters{
		DNI:          query.Get("dni"),
		Email:        query.Get("email"),
		CompleteName: query.Get("completeName"),
		Vaccine:      query.Get("vaccine"),
	}

	if raw := query.Get("isVaccinated"); raw != "" {
		if isVaccinated, err := strconv.ParseBool(raw); err == nil {
			filters.IsVaccinated = &isVaccinated
		}
	}

	if start, err := time.Parse("2006-01-02", query.Get("startDate")); err == nil {
		filters.StartDate = &start
	}
	if finish, err := time.Parse("2006-01-02", query.Get("finishDate")); err == nil {
		filters.FinishDate = &finish
	}

	return filters
}

// ListEmployees GET /api/employees
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filters := parseEmployeeFilters(r)

	employees, err := h.employeeService.ListEmployees(r.Context(), filters)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    employees,
	})
}

// GetMyInformation GET /api/employees/me — el dni sale del token
func (h *EmployeeHandler) GetMyInformation(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondWithError(w, http.StatusUnauthorized, "token requerido")
		return
	}

	employee, err := h.employeeService.GetEmployee(r.Context(), repositories.EmployeeFinder{DNI: &claims.DNI})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    employee,
	})
}

// CreateEmployee POST /api/employees
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req services.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "cuerpo de petición inválido")
		return
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "empleado creado",
		Data:    created,
	})
}

// updateEmployeePayload envuelve el tipo de cambio y el DTO parcial
type updateEmployeePayload struct {
	Type     string                          `json:"type"`
	Employee *services.UpdateEmployeeRequest `json:"employee,omitempty"`
}

// UpdateEmployee PUT /api/employees/{dni} — el rol del llamador sale
// del token y decide la autorización del borrado lógico
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	dni, err := strconv.ParseInt(mux.Vars(r)["dni"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "dni inválido")
		return
	}

	var payload updateEmployeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "cuerpo de petición inválido")
		return
	}

	var callerRole string
	if claims := ClaimsFromContext(r.Context()); claims != nil {
		callerRole = claims.Role
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), dni, callerRole, payload.Type, payload.Employee)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Message: result.Message,
		Data:    result,
	})
}

// RegisterVaccination POST /api/employees/{dni}/vaccinations
func (h *EmployeeHandler) RegisterVaccination(w http.ResponseWriter, r *http.Request) {
	dni, err := strconv.ParseInt(mux.Vars(r)["dni"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "dni inválido")
		return
	}

	var req services.RegisterVaccinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "cuerpo de petición inválido")
		return
	}

	employee, err := h.employeeService.RegisterVaccination(r.Context(), dni, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "vacunación registrada",
		Data:    employee,
	})
}
