package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"employee-microservice-go/pkg/application/services"
)

// VaccineHandler maneja las peticiones HTTP del catálogo de vacunas
type VaccineHandler struct {
	vaccineService services.VaccineService
}

// NewVaccineHandler crea una nueva instancia del handler de vacunas
func NewVaccineHandler(vaccineService services.VaccineService) *VaccineHandler {
	return &VaccineHandler{
		vaccineService: vaccineService,
	}
}

// RegisterRoutes registra las rutas de vacunas en el router
func (h *VaccineHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.ListActiveVaccines).Methods("GET")
}

// ListActiveVaccines GET /api/vaccines — catálogo activo ordenado por tipo
func (h *VaccineHandler) ListActiveVaccines(w http.ResponseWriter, r *http.Request) {
	vaccines, err := h.vaccineService.ListActiveVaccines(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    vaccines,
	})
}
