package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/entities"
)

// EmployeeFilters son los filtros opcionales del listado. Un campo
// vacío no emite predicado alguno; StartDate/FinishDate sólo aplican
// cuando vienen los dos juntos.
type EmployeeFilters struct {
	DNI          string
	Email        string
	CompleteName string
	Vaccine      string
	IsVaccinated *bool
	StartDate    *time.Time
	FinishDate   *time.Time
}

// EmployeeFinder son los criterios exactos de búsqueda puntual; cada
// campo se aplica sólo si viene, combinados con AND.
type EmployeeFinder struct {
	DNI        *int64
	Email      *string
	EmployeeID *uuid.UUID
}

type EmployeeRepository interface {
	// Operaciones CRUD básicas
	Create(ctx context.Context, tx *sql.Tx, employee *entities.Employee) error
	Update(ctx context.Context, employee *entities.Employee) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error

	// Lecturas planas (sin joins), para chequeos de existencia
	FindByEmail(ctx context.Context, email string) (*entities.Employee, error)

	// Lecturas del grafo completo (employee ⨝ person ⨝ user ⨝ roles ⨝ vacunas)
	List(ctx context.Context, filters *EmployeeFilters) ([]*entities.Employee, error)
	FindOne(ctx context.Context, finder EmployeeFinder) (*entities.Employee, error)

	// Transacciones para la creación multi-entidad
	BeginTx(ctx context.Context) (*sql.Tx, error)
}
