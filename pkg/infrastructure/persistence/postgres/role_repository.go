// pkg/infrastructure/persistence/postgres/role_repository.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"employee-microservice-go/pkg/domain/entities"
)

type roleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) *roleRepository {
	return &roleRepository{
		db: db,
	}
}

func (r *roleRepository) Create(ctx context.Context, role *entities.Role) error {
	query := `
		INSERT INTO roles (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		role.ID,
		role.Name,
		role.Status,
		role.CreatedAt,
		role.UpdatedAt,
	)
	return err
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Role, error) {
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	var role entities.Role
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&role.ID,
		&role.Name,
		&role.Status,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &role, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM roles
		WHERE name = $1 AND status = 'ACTIVE'
	`

	var role entities.Role
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&role.ID,
		&role.Name,
		&role.Status,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM roles
		WHERE status = 'ACTIVE'
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*entities.Role{}
	for rows.Next() {
		var role entities.Role
		err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Status,
			&role.CreatedAt,
			&role.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}
