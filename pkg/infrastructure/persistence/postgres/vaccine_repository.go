// pkg/infrastructure/persistence/postgres/vaccine_repository.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"employee-microservice-go/pkg/domain/entities"
)

type vaccineRepository struct {
	db *sqlx.DB
}

func NewVaccineRepository(db *sqlx.DB) *vaccineRepository {
	return &vaccineRepository{
		db: db,
	}
}

func (r *vaccineRepository) ListActive(ctx context.Context) ([]*entities.Vaccine, error) {
	query := `
		SELECT id, vaccine_type, status, created_at, updated_at
		FROM vaccines
		WHERE status = 'ACTIVE'
		ORDER BY vaccine_type ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Slice vacío, nunca nil: sin vacunas el resultado es [], no null
	vaccines := []*entities.Vaccine{}
	for rows.Next() {
		var vaccine entities.Vaccine
		err := rows.Scan(
			&vaccine.ID,
			&vaccine.VaccineType,
			&vaccine.Status,
			&vaccine.CreatedAt,
			&vaccine.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vaccines = append(vaccines, &vaccine)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return vaccines, nil
}

func (r *vaccineRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Vaccine, error) {
	query := `
		SELECT id, vaccine_type, status, created_at, updated_at
		FROM vaccines
		WHERE id = $1 AND status = 'ACTIVE'
	`

	var vaccine entities.Vaccine
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&vaccine.ID,
		&vaccine.VaccineType,
		&vaccine.Status,
		&vaccine.CreatedAt,
		&vaccine.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &vaccine, nil
}
