package services

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys de los eventos de empleado
const (
	EventEmployeeCreated = "employee.created"
	EventEmployeeUpdated = "employee.updated"
	EventEmployeeDeleted = "employee.deleted"
)

// EmployeeEvent es el payload publicado al broker en cada mutación.
// InitialPassword sólo viaja en employee.created, para que el worker
// arme el correo de bienvenida con las credenciales.
type EmployeeEvent struct {
	EmployeeID      uuid.UUID `json:"employeeId"`
	DNI             int64     `json:"dni"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Username        string    `json:"username,omitempty"`
	InitialPassword string    `json:"initialPassword,omitempty"`
	Role            string    `json:"role,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}
