package entities

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID                uuid.UUID `json:"id"`
	PersonID          uuid.UUID `json:"personId"`
	Email             string    `json:"email"`
	BirthDate         time.Time `json:"birthDate"`
	HomeAddress       string    `json:"homeAddress"`
	MobilePhone       string    `json:"mobilePhone"`
	VaccinationStatus bool      `json:"vaccinationStatus"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	// Relaciones
	Person       *Person                `json:"person,omitempty"`
	User         *User                  `json:"user,omitempty"`
	Vaccinations []*EmployeeVaccination `json:"vaccinations,omitempty"`
}
