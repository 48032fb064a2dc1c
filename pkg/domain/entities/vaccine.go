package entities

import (
	"time"

	"github.com/google/uuid"
)

type Vaccine struct {
	ID          uuid.UUID `json:"id"`
	VaccineType string    `json:"vaccineType"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
