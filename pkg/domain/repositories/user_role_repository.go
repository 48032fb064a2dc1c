package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/entities"
)

type UserRoleRepository interface {
	Create(ctx context.Context, tx *sql.Tx, userRole *entities.UserRole) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserRole, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error
}
