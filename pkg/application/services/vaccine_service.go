package services

import (
	"context"

	"employee-microservice-go/pkg/domain/entities"
	"employee-microservice-go/pkg/domain/repositories"
)

// VaccineService expone el catálogo de vacunas (lectura solamente; el
// catálogo se administra por fuera).
type VaccineService interface {
	ListActiveVaccines(ctx context.Context) ([]*entities.Vaccine, error)
}

type vaccineServiceImpl struct {
	vaccineRepo repositories.VaccineRepository
}

func NewVaccineService(vaccineRepo repositories.VaccineRepository) VaccineService {
	return &vaccineServiceImpl{
		vaccineRepo: vaccineRepo,
	}
}

// ListActiveVaccines devuelve las vacunas activas ordenadas por tipo.
func (s *vaccineServiceImpl) ListActiveVaccines(ctx context.Context) ([]*entities.Vaccine, error) {
	return s.vaccineRepo.ListActive(ctx)
}
