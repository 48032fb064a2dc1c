package repositories

import (
	"context"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/entities"
)

type EmployeeVaccinationRepository interface {
	Create(ctx context.Context, vaccination *entities.EmployeeVaccination) error
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entities.EmployeeVaccination, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error
}
