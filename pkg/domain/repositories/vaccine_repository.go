package repositories

import (
	"context"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/entities"
)

type VaccineRepository interface {
	// ListActive devuelve las vacunas activas ordenadas por tipo ascendente.
	// Sin filas devuelve slice vacío, nunca nil con error.
	ListActive(ctx context.Context) ([]*entities.Vaccine, error)
	// FindByID devuelve (nil, nil) si no hay vacuna activa con ese id.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Vaccine, error)
}
