// pkg/infrastructure/persistence/postgres/employee_vaccination_repository.go
package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"employee-microservice-go/pkg/domain/entities"
)

type employeeVaccinationRepository struct {
	db *sqlx.DB
}

func NewEmployeeVaccinationRepository(db *sqlx.DB) *employeeVaccinationRepository {
	return &employeeVaccinationRepository{
		db: db,
	}
}

func (r *employeeVaccinationRepository) Create(ctx context.Context, vaccination *entities.EmployeeVaccination) error {
	query := `
		INSERT INTO employee_vaccinations (
			id, employee_id, vaccine_id, dose_number, vaccination_date,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		vaccination.ID,
		vaccination.EmployeeID,
		vaccination.VaccineID,
		vaccination.DoseNumber,
		vaccination.VaccinationDate,
		vaccination.Status,
		vaccination.CreatedAt,
		vaccination.UpdatedAt,
	)
	return err
}

func (r *employeeVaccinationRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entities.EmployeeVaccination, error) {
	query := `
		SELECT ev.id, ev.employee_id, ev.vaccine_id, ev.dose_number, ev.vaccination_date,
			ev.status, ev.created_at, ev.updated_at,
			v.id, v.vaccine_type, v.status, v.created_at, v.updated_at
		FROM employee_vaccinations ev
		INNER JOIN vaccines v ON v.id = ev.vaccine_id AND v.status = 'ACTIVE'
		WHERE ev.employee_id = $1 AND ev.status = 'ACTIVE'
		ORDER BY ev.vaccination_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vaccinations := []*entities.EmployeeVaccination{}
	for rows.Next() {
		var vaccination entities.EmployeeVaccination
		var vaccine entities.Vaccine
		err := rows.Scan(
			&vaccination.ID,
			&vaccination.EmployeeID,
			&vaccination.VaccineID,
			&vaccination.DoseNumber,
			&vaccination.VaccinationDate,
			&vaccination.Status,
			&vaccination.CreatedAt,
			&vaccination.UpdatedAt,
			&vaccine.ID,
			&vaccine.VaccineType,
			&vaccine.Status,
			&vaccine.CreatedAt,
			&vaccine.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vaccination.Vaccine = &vaccine
		vaccinations = append(vaccinations, &vaccination)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return vaccinations, nil
}

func (r *employeeVaccinationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	query := `
		UPDATE employee_vaccinations
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}
