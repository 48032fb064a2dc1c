package entities

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeVaccination es la entidad de unión empleado-vacuna: una fila
// por dosis aplicada.
type EmployeeVaccination struct {
	ID              uuid.UUID `json:"id"`
	EmployeeID      uuid.UUID `json:"employeeId"`
	VaccineID       uuid.UUID `json:"vaccineId"`
	DoseNumber      int       `json:"doseNumber"`
	VaccinationDate time.Time `json:"vaccinationDate"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Relaciones
	Vaccine *Vaccine `json:"vaccine,omitempty"`
}
