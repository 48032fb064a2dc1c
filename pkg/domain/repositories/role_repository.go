package repositories

import (
	"context"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/entities"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entities.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Role, error)
	// FindByName busca un rol activo por nombre; (nil, nil) si no existe.
	FindByName(ctx context.Context, name string) (*entities.Role, error)
	List(ctx context.Context) ([]*entities.Role, error)
}
