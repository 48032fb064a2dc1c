package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole es la entidad de unión usuario-rol. Modela membresías
// asignables y revocables (soft delete vía status, igual que el resto).
type UserRole struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	RoleID    uuid.UUID `json:"roleId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relaciones
	Role *Role `json:"role,omitempty"`
}
