// pkg/infrastructure/persistence/postgres/user_repository.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"employee-microservice-go/pkg/domain/entities"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, tx *sql.Tx, user *entities.User) error {
	query := `
		INSERT INTO users (id, employee_id, username, password, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	args := []interface{}{
		user.ID,
		user.EmployeeID,
		user.Username,
		user.Password,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	}

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `
		SELECT id, employee_id, username, password, status, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.EmployeeID,
		&user.Username,
		&user.Password,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `
		SELECT id, employee_id, username, password, status, created_at, updated_at
		FROM users
		WHERE username = $1 AND status = 'ACTIVE'
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.EmployeeID,
		&user.Username,
		&user.Password,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) (*entities.User, error) {
	query := `
		SELECT id, employee_id, username, password, status, created_at, updated_at
		FROM users
		WHERE employee_id = $1 AND status = 'ACTIVE'
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, employeeID).Scan(
		&user.ID,
		&user.EmployeeID,
		&user.Username,
		&user.Password,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	query := `
		UPDATE users
		SET username = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, username, time.Now(), id)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, password string, tx *sql.Tx) error {
	query := `
		UPDATE users
		SET password = $1, updated_at = $2
		WHERE id = $3
	`

	// Si hay transacción, usarla; si no, usar conexión normal
	if tx != nil {
		_, err := tx.ExecContext(ctx, query, password, time.Now(), id)
		return err
	}
	_, err := r.db.ExecContext(ctx, query, password, time.Now(), id)
	return err
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	query := `
		UPDATE users
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}
