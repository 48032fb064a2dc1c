package entities

import (
	"time"

	"github.com/google/uuid"
)

type Person struct {
	ID        uuid.UUID `json:"id"`
	DNI       int64     `json:"dni"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
