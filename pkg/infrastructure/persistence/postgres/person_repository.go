// pkg/infrastructure/persistence/postgres/person_repository.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"employee-microservice-go/pkg/domain/entities"
)

type personRepository struct {
	db *sqlx.DB
}

func NewPersonRepository(db *sqlx.DB) *personRepository {
	return &personRepository{
		db: db,
	}
}

func (r *personRepository) Create(ctx context.Context, tx *sql.Tx, person *entities.Person) error {
	query := `
		INSERT INTO persons (id, dni, first_name, last_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	args := []interface{}{
		person.ID,
		person.DNI,
		person.FirstName,
		person.LastName,
		person.Status,
		person.CreatedAt,
		person.UpdatedAt,
	}

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *personRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Person, error) {
	query := `
		SELECT id, dni, first_name, last_name, status, created_at, updated_at
		FROM persons
		WHERE id = $1
	`

	var person entities.Person
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&person.ID,
		&person.DNI,
		&person.FirstName,
		&person.LastName,
		&person.Status,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &person, nil
}

func (r *personRepository) FindByDNI(ctx context.Context, dni int64) (*entities.Person, error) {
	query := `
		SELECT id, dni, first_name, last_name, status, created_at, updated_at
		FROM persons
		WHERE dni = $1 AND status = 'ACTIVE'
	`

	var person entities.Person
	err := r.db.QueryRowContext(ctx, query, dni).Scan(
		&person.ID,
		&person.DNI,
		&person.FirstName,
		&person.LastName,
		&person.Status,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &person, nil
}

func (r *personRepository) Update(ctx context.Context, person *entities.Person) error {
	query := `
		UPDATE persons
		SET dni = $1, first_name = $2, last_name = $3, updated_at = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		person.DNI,
		person.FirstName,
		person.LastName,
		time.Now(),
		person.ID,
	)

	return err
}

func (r *personRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	query := `
		UPDATE persons
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}
