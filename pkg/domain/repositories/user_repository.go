package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, tx *sql.Tx, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	// FindByUsername devuelve (nil, nil) si no existe usuario activo.
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	// FindByEmployee devuelve el usuario 1:1 del empleado, (nil, nil) si no hay.
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) (*entities.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, password string, tx *sql.Tx) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error
}
