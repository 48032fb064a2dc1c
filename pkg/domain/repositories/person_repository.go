package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/entities"
)

type PersonRepository interface {
	Create(ctx context.Context, tx *sql.Tx, person *entities.Person) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Person, error)
	// FindByDNI devuelve (nil, nil) si no hay persona activa con ese dni.
	FindByDNI(ctx context.Context, dni int64) (*entities.Person, error)
	Update(ctx context.Context, person *entities.Person) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error
}
