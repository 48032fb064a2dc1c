// pkg/infrastructure/persistence/postgres/employee_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"employee-microservice-go/pkg/domain/entities"
	"employee-microservice-go/pkg/domain/repositories"
)

type employeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) *employeeRepository {
	return &employeeRepository{
		db: db,
	}
}

// employeeGraphQuery es la vista canónica de lectura: el empleado con
// todo su grafo (persona, usuario, roles, vacunaciones y vacunas).
// Todos los joins son LEFT y cada uno filtra por su propio status
// dentro del ON: una rama inactiva desaparece sin tumbar la fila padre.
const employeeGraphQuery = `
	SELECT
		e.id, e.person_id, e.email, e.birth_date, e.home_address, e.mobile_phone,
		e.vaccination_status, e.status, e.created_at, e.updated_at,
		p.id, p.dni, p.first_name, p.last_name,
		u.id, u.username, u.password,
		ur.id, r.id, r.name,
		ev.id, ev.vaccine_id, ev.dose_number, ev.vaccination_date,
		v.id, v.vaccine_type
	FROM employees e
	LEFT JOIN persons p ON p.id = e.person_id AND p.status = 'ACTIVE'
	LEFT JOIN users u ON u.employee_id = e.id AND u.status = 'ACTIVE'
	LEFT JOIN user_roles ur ON ur.user_id = u.id AND ur.status = 'ACTIVE'
	LEFT JOIN roles r ON r.id = ur.role_id AND r.status = 'ACTIVE'
	LEFT JOIN employee_vaccinations ev ON ev.employee_id = e.id AND ev.status = 'ACTIVE'
	LEFT JOIN vaccines v ON v.id = ev.vaccine_id AND v.status = 'ACTIVE'
	WHERE e.status = 'ACTIVE'`

// BuildEmployeeFilterClauses arma los predicados opcionales del listado.
// Emite exactamente una cláusula por filtro presente y ninguna para un
// filtro vacío; el rango de fechas sólo aplica con ambos extremos.
// Los placeholders arrancan en argIdx para poder encadenarse detrás de
// otros argumentos ya posicionados.
func BuildEmployeeFilterClauses(filters *repositories.EmployeeFilters, argIdx int) ([]string, []interface{}) {
	if filters == nil {
		return nil, nil
	}

	var clauses []string
	var args []interface{}

	if filters.DNI != "" {
		clauses = append(clauses, fmt.Sprintf("CAST(p.dni AS TEXT) ILIKE $%d", argIdx))
		args = append(args, "%"+filters.DNI+"%")
		argIdx++
	}

	if filters.Email != "" {
		clauses = append(clauses, fmt.Sprintf("e.email ILIKE $%d", argIdx))
		args = append(args, "%"+filters.Email+"%")
		argIdx++
	}

	if filters.CompleteName != "" {
		clauses = append(clauses, fmt.Sprintf("(p.first_name || ' ' || p.last_name) ILIKE $%d", argIdx))
		args = append(args, "%"+filters.CompleteName+"%")
		argIdx++
	}

	if filters.Vaccine != "" {
		clauses = append(clauses, fmt.Sprintf("v.vaccine_type ILIKE $%d", argIdx))
		args = append(args, "%"+filters.Vaccine+"%")
		argIdx++
	}

	if filters.IsVaccinated != nil {
		clauses = append(clauses, fmt.Sprintf("e.vaccination_status = $%d", argIdx))
		args = append(args, *filters.IsVaccinated)
		argIdx++
	}

	// El rango es inclusivo y requiere las dos fechas; una sola no
	// emite predicado.
	if filters.StartDate != nil && filters.FinishDate != nil {
		clauses = append(clauses, fmt.Sprintf("ev.vaccination_date BETWEEN $%d AND $%d", argIdx, argIdx+1))
		args = append(args, *filters.StartDate, *filters.FinishDate)
		argIdx += 2
	}

	return clauses, args
}

// buildEmployeeFinderClauses arma los predicados exactos de búsqueda
// puntual (dni, email, id), cada uno sólo si viene.
func buildEmployeeFinderClauses(finder repositories.EmployeeFinder, argIdx int) ([]string, []interface{}) {
	var clauses []string
	var args []interface{}

	if finder.DNI != nil {
		clauses = append(clauses, fmt.Sprintf("p.dni = $%d", argIdx))
		args = append(args, *finder.DNI)
		argIdx++
	}

	if finder.Email != nil {
		clauses = append(clauses, fmt.Sprintf("e.email = $%d", argIdx))
		args = append(args, *finder.Email)
		argIdx++
	}

	if finder.EmployeeID != nil {
		clauses = append(clauses, fmt.Sprintf("e.id = $%d", argIdx))
		args = append(args, *finder.EmployeeID)
		argIdx++
	}

	return clauses, args
}

func (r *employeeRepository) List(ctx context.Context, filters *repositories.EmployeeFilters) ([]*entities.Employee, error) {
	query := employeeGraphQuery
	clauses, args := BuildEmployeeFilterClauses(filters, 1)
	for _, clause := range clauses {
		query += "\n\tAND " + clause
	}
	query += "\n\tORDER BY e.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmployeeGraph(rows)
}

func (r *employeeRepository) FindOne(ctx context.Context, finder repositories.EmployeeFinder) (*entities.Employee, error) {
	query := employeeGraphQuery
	clauses, args := buildEmployeeFinderClauses(finder, 1)
	for _, clause := range clauses {
		query += "\n\tAND " + clause
	}
	query += "\n\tORDER BY e.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees, err := scanEmployeeGraph(rows)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, nil
	}
	return employees[0], nil
}

// scanEmployeeGraph rearma los agregados a partir de las filas
// explotadas del join: una fila por combinación rol × vacunación, que
// se deduplica por el id de cada entidad de unión.
func scanEmployeeGraph(rows *sql.Rows) ([]*entities.Employee, error) {
	byID := map[uuid.UUID]*entities.Employee{}
	seenRoles := map[uuid.UUID]map[uuid.UUID]bool{}
	seenVaccinations := map[uuid.UUID]map[uuid.UUID]bool{}
	var ordered []*entities.Employee

	for rows.Next() {
		var (
			employee entities.Employee

			personID  uuid.NullUUID
			dni       sql.NullInt64
			firstName sql.NullString
			lastName  sql.NullString

			userID   uuid.NullUUID
			username sql.NullString
			password sql.NullString

			userRoleID uuid.NullUUID
			roleID     uuid.NullUUID
			roleName   sql.NullString

			vaccinationID   uuid.NullUUID
			vaccineID       uuid.NullUUID
			doseNumber      sql.NullInt64
			vaccinationDate sql.NullTime

			vacID       uuid.NullUUID
			vaccineType sql.NullString
		)

		err := rows.Scan(
			&employee.ID,
			&employee.PersonID,
			&employee.Email,
			&employee.BirthDate,
			&employee.HomeAddress,
			&employee.MobilePhone,
			&employee.VaccinationStatus,
			&employee.Status,
			&employee.CreatedAt,
			&employee.UpdatedAt,
			&personID,
			&dni,
			&firstName,
			&lastName,
			&userID,
			&username,
			&password,
			&userRoleID,
			&roleID,
			&roleName,
			&vaccinationID,
			&vaccineID,
			&doseNumber,
			&vaccinationDate,
			&vacID,
			&vaccineType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}

		agg, ok := byID[employee.ID]
		if !ok {
			agg = &employee
			if personID.Valid {
				agg.Person = &entities.Person{
					ID:        personID.UUID,
					DNI:       dni.Int64,
					FirstName: firstName.String,
					LastName:  lastName.String,
					Status:    entities.StatusActive,
				}
			}
			if userID.Valid {
				agg.User = &entities.User{
					ID:         userID.UUID,
					EmployeeID: employee.ID,
					Username:   username.String,
					Password:   password.String,
					Status:     entities.StatusActive,
				}
			}
			byID[employee.ID] = agg
			seenRoles[employee.ID] = map[uuid.UUID]bool{}
			seenVaccinations[employee.ID] = map[uuid.UUID]bool{}
			ordered = append(ordered, agg)
		}

		if userRoleID.Valid && agg.User != nil && !seenRoles[agg.ID][userRoleID.UUID] {
			seenRoles[agg.ID][userRoleID.UUID] = true
			userRole := &entities.UserRole{
				ID:     userRoleID.UUID,
				UserID: agg.User.ID,
				Status: entities.StatusActive,
			}
			if roleID.Valid {
				userRole.RoleID = roleID.UUID
				userRole.Role = &entities.Role{
					ID:     roleID.UUID,
					Name:   roleName.String,
					Status: entities.StatusActive,
				}
			}
			agg.User.UserRoles = append(agg.User.UserRoles, userRole)
		}

		if vaccinationID.Valid && !seenVaccinations[agg.ID][vaccinationID.UUID] {
			seenVaccinations[agg.ID][vaccinationID.UUID] = true
			vaccination := &entities.EmployeeVaccination{
				ID:              vaccinationID.UUID,
				EmployeeID:      agg.ID,
				DoseNumber:      int(doseNumber.Int64),
				VaccinationDate: vaccinationDate.Time,
				Status:          entities.StatusActive,
			}
			if vaccineID.Valid {
				vaccination.VaccineID = vaccineID.UUID
			}
			if vacID.Valid {
				vaccination.Vaccine = &entities.Vaccine{
					ID:          vacID.UUID,
					VaccineType: vaccineType.String,
					Status:      entities.StatusActive,
				}
			}
			agg.Vaccinations = append(agg.Vaccinations, vaccination)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	return ordered, nil
}

func (r *employeeRepository) Create(ctx context.Context, tx *sql.Tx, employee *entities.Employee) error {
	query := `
		INSERT INTO employees (
			id, person_id, email, birth_date, home_address, mobile_phone,
			vaccination_status, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	args := []interface{}{
		employee.ID,
		employee.PersonID,
		employee.Email,
		employee.BirthDate,
		employee.HomeAddress,
		employee.MobilePhone,
		employee.VaccinationStatus,
		employee.Status,
		employee.CreatedAt,
		employee.UpdatedAt,
	}

	// Si hay transacción, usarla; si no, la conexión normal
	if tx != nil {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *employeeRepository) Update(ctx context.Context, employee *entities.Employee) error {
	query := `
		UPDATE employees
		SET
			email = $1,
			birth_date = $2,
			home_address = $3,
			mobile_phone = $4,
			vaccination_status = $5,
			updated_at = $6
		WHERE id = $7
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		employee.Email,
		employee.BirthDate,
		employee.HomeAddress,
		employee.MobilePhone,
		employee.VaccinationStatus,
		time.Now(),
		employee.ID,
	)

	return err
}

func (r *employeeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	query := `
		UPDATE employees
		SET
			status = $1,
			updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

// FindByEmail es la lectura plana para el chequeo de unicidad del email
// en la creación; no arma el grafo. Devuelve (nil, nil) si no hay fila.
func (r *employeeRepository) FindByEmail(ctx context.Context, email string) (*entities.Employee, error) {
	query := `
		SELECT id, person_id, email, birth_date, home_address, mobile_phone,
			vaccination_status, status, created_at, updated_at
		FROM employees
		WHERE email = $1 AND status = 'ACTIVE'
	`

	var employee entities.Employee
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&employee.ID,
		&employee.PersonID,
		&employee.Email,
		&employee.BirthDate,
		&employee.HomeAddress,
		&employee.MobilePhone,
		&employee.VaccinationStatus,
		&employee.Status,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &employee, nil
}

// BeginTx inicia la transacción que envuelve la creación multi-entidad
func (r *employeeRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}
