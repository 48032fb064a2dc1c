package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"employee-microservice-go/pkg/application/services"
	"employee-microservice-go/pkg/infrastructure/auth"
)

type contextKey string

const claimsContextKey contextKey = "tokenClaims"

// ClaimsFromContext devuelve los claims del token de la petición, o
// nil si la petición no pasó por el middleware de autenticación.
func ClaimsFromContext(ctx context.Context) *auth.TokenClaims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.TokenClaims)
	return claims
}

// AuthHandler maneja el login y el middleware de autenticación
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler crea una nueva instancia del handler de autenticación
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registra las rutas de autenticación en el router
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.Login).Methods("POST")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "cuerpo de petición inválido")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]string{"token": token},
	})
}

// Middleware valida el bearer token y deja los claims en el contexto
// de la petición. Las rutas protegidas rechazan con 401 sin token
// válido.
func (h *AuthHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondWithError(w, http.StatusUnauthorized, "token requerido")
			return
		}

		claims, err := h.authService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "token inválido")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
