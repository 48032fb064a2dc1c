// pkg/infrastructure/persistence/postgres/user_role_repository.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"employee-microservice-go/pkg/domain/entities"
)

type userRoleRepository struct {
	db *sqlx.DB
}

func NewUserRoleRepository(db *sqlx.DB) *userRoleRepository {
	return &userRoleRepository{
		db: db,
	}
}

func (r *userRoleRepository) Create(ctx context.Context, tx *sql.Tx, userRole *entities.UserRole) error {
	query := `
		INSERT INTO user_roles (id, user_id, role_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	args := []interface{}{
		userRole.ID,
		userRole.UserID,
		userRole.RoleID,
		userRole.Status,
		userRole.CreatedAt,
		userRole.UpdatedAt,
	}

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *userRoleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserRole, error) {
	query := `
		SELECT ur.id, ur.user_id, ur.role_id, ur.status, ur.created_at, ur.updated_at,
			r.id, r.name, r.status, r.created_at, r.updated_at
		FROM user_roles ur
		INNER JOIN roles r ON r.id = ur.role_id AND r.status = 'ACTIVE'
		WHERE ur.user_id = $1 AND ur.status = 'ACTIVE'
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userRoles := []*entities.UserRole{}
	for rows.Next() {
		var userRole entities.UserRole
		var role entities.Role
		err := rows.Scan(
			&userRole.ID,
			&userRole.UserID,
			&userRole.RoleID,
			&userRole.Status,
			&userRole.CreatedAt,
			&userRole.UpdatedAt,
			&role.ID,
			&role.Name,
			&role.Status,
			&role.CreatedAt,
			&role.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		userRole.Role = &role
		userRoles = append(userRoles, &userRole)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return userRoles, nil
}

func (r *userRoleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	query := `
		UPDATE user_roles
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}
