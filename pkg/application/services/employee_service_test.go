package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"employee-microservice-go/pkg/domain/apperrors"
	"employee-microservice-go/pkg/domain/entities"
	"employee-microservice-go/pkg/domain/repositories"
)

// ----------------------------------------------------------------------------
// Fakes en memoria de los repositorios
// ----------------------------------------------------------------------------

type statusCall struct {
	id     uuid.UUID
	status entities.Status
}

type fakeEmployeeRepo struct {
	graph       *entities.Employee
	byEmail     map[string]*entities.Employee
	updated     []*entities.Employee
	statusCalls []statusCall
	beginTxErr  error
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, tx *sql.Tx, employee *entities.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, employee *entities.Employee) error {
	copied := *employee
	f.updated = append(f.updated, &copied)
	return nil
}

func (f *fakeEmployeeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	f.statusCalls = append(f.statusCalls, statusCall{id: id, status: status})
	return nil
}

func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*entities.Employee, error) {
	return f.byEmail[email], nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filters *repositories.EmployeeFilters) ([]*entities.Employee, error) {
	if f.graph == nil {
		return nil, nil
	}
	return []*entities.Employee{f.graph}, nil
}

func (f *fakeEmployeeRepo) FindOne(ctx context.Context, finder repositories.EmployeeFinder) (*entities.Employee, error) {
	if f.graph == nil {
		return nil, nil
	}
	if finder.DNI != nil && (f.graph.Person == nil || f.graph.Person.DNI != *finder.DNI) {
		return nil, nil
	}
	if finder.Email != nil && f.graph.Email != *finder.Email {
		return nil, nil
	}
	if finder.EmployeeID != nil && f.graph.ID != *finder.EmployeeID {
		return nil, nil
	}
	return f.graph, nil
}

func (f *fakeEmployeeRepo) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return nil, f.beginTxErr
}

type fakePersonRepo struct {
	byDNI   map[int64]*entities.Person
	updated []*entities.Person
}

func (f *fakePersonRepo) Create(ctx context.Context, tx *sql.Tx, person *entities.Person) error {
	return nil
}

func (f *fakePersonRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Person, error) {
	return nil, nil
}

func (f *fakePersonRepo) FindByDNI(ctx context.Context, dni int64) (*entities.Person, error) {
	return f.byDNI[dni], nil
}

func (f *fakePersonRepo) Update(ctx context.Context, person *entities.Person) error {
	copied := *person
	f.updated = append(f.updated, &copied)
	return nil
}

func (f *fakePersonRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	return nil
}

type fakeUserRepo struct {
	byUsername       map[string]*entities.User
	updatedUsernames map[uuid.UUID]string
	updatedPasswords map[uuid.UUID]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername:       map[string]*entities.User{},
		updatedUsernames: map[uuid.UUID]string{},
		updatedPasswords: map[uuid.UUID]string{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, user *entities.User) error {
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return f.byUsername[username], nil
}

func (f *fakeUserRepo) FindByEmployee(ctx context.Context, employeeID uuid.UUID) (*entities.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	f.updatedUsernames[id] = username
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, password string, tx *sql.Tx) error {
	f.updatedPasswords[id] = password
	return nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	return nil
}

type fakeRoleRepo struct {
	byName map[string]*entities.Role
}

func (f *fakeRoleRepo) Create(ctx context.Context, role *entities.Role) error {
	return nil
}

func (f *fakeRoleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Role, error) {
	return nil, nil
}

func (f *fakeRoleRepo) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	return f.byName[name], nil
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]*entities.Role, error) {
	return nil, nil
}

type fakeUserRoleRepo struct {
	byUser []*entities.UserRole
}

func (f *fakeUserRoleRepo) Create(ctx context.Context, tx *sql.Tx, userRole *entities.UserRole) error {
	return nil
}

func (f *fakeUserRoleRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserRole, error) {
	return f.byUser, nil
}

func (f *fakeUserRoleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	return nil
}

type fakeVaccineRepo struct {
	byID map[uuid.UUID]*entities.Vaccine
}

func (f *fakeVaccineRepo) ListActive(ctx context.Context) ([]*entities.Vaccine, error) {
	vaccines := []*entities.Vaccine{}
	for _, vaccine := range f.byID {
		vaccines = append(vaccines, vaccine)
	}
	return vaccines, nil
}

func (f *fakeVaccineRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Vaccine, error) {
	return f.byID[id], nil
}

type fakeVaccinationRepo struct {
	created []*entities.EmployeeVaccination
}

func (f *fakeVaccinationRepo) Create(ctx context.Context, vaccination *entities.EmployeeVaccination) error {
	f.created = append(f.created, vaccination)
	return nil
}

func (f *fakeVaccinationRepo) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entities.EmployeeVaccination, error) {
	return nil, nil
}

func (f *fakeVaccinationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	return nil
}

type publishedEvent struct {
	routingKey string
	event      interface{}
}

type fakePublisher struct {
	published []publishedEvent
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	f.published = append(f.published, publishedEvent{routingKey: routingKey, event: event})
	return nil
}

// ----------------------------------------------------------------------------
// Fixture
// ----------------------------------------------------------------------------

type serviceFixture struct {
	employeeRepo    *fakeEmployeeRepo
	personRepo      *fakePersonRepo
	userRepo        *fakeUserRepo
	roleRepo        *fakeRoleRepo
	userRoleRepo    *fakeUserRoleRepo
	vaccineRepo     *fakeVaccineRepo
	vaccinationRepo *fakeVaccinationRepo
	events          *fakePublisher
	service         EmployeeService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		employeeRepo:    &fakeEmployeeRepo{byEmail: map[string]*entities.Employee{}},
		personRepo:      &fakePersonRepo{byDNI: map[int64]*entities.Person{}},
		userRepo:        newFakeUserRepo(),
		roleRepo:        &fakeRoleRepo{byName: map[string]*entities.Role{}},
		userRoleRepo:    &fakeUserRoleRepo{},
		vaccineRepo:     &fakeVaccineRepo{byID: map[uuid.UUID]*entities.Vaccine{}},
		vaccinationRepo: &fakeVaccinationRepo{},
		events:          &fakePublisher{},
	}
	f.service = NewEmployeeService(
		f.employeeRepo,
		f.personRepo,
		f.userRepo,
		f.roleRepo,
		f.userRoleRepo,
		f.vaccineRepo,
		f.vaccinationRepo,
		f.events,
	)
	return f
}

// employeeGraphFixture arma un agregado activo completo con persona y
// usuario, como lo devuelve la lectura del grafo.
func employeeGraphFixture() *entities.Employee {
	employeeID := uuid.New()
	return &entities.Employee{
		ID:          employeeID,
		PersonID:    uuid.New(),
		Email:       "ana@empresa.com",
		HomeAddress: "Av. Siempre Viva 123",
		MobilePhone: "987654321",
		Status:      entities.StatusActive,
		Person: &entities.Person{
			ID:        uuid.New(),
			DNI:       45678901,
			FirstName: "Ana",
			LastName:  "Perez",
			Status:    entities.StatusActive,
		},
		User: &entities.User{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Username:   "ana@empresa.com",
			Password:   "$2a$10$hash",
			Status:     entities.StatusActive,
		},
	}
}

func validCreateRequest() *CreateEmployeeRequest {
	return &CreateEmployeeRequest{
		DNI:         45678901,
		FirstName:   "Ana",
		LastName:    "Perez",
		Email:       "ana@empresa.com",
		BirthDate:   time.Date(1990, 7, 15, 0, 0, 0, 0, time.UTC),
		HomeAddress: "Av. Siempre Viva 123",
		MobilePhone: "987654321",
		Role:        "EMPLOYEE",
	}
}

// ----------------------------------------------------------------------------
// CreateEmployee
// ----------------------------------------------------------------------------

func TestCreateEmployeeRejectsDuplicateDNI(t *testing.T) {
	f := newServiceFixture()
	f.personRepo.byDNI[45678901] = &entities.Person{ID: uuid.New(), DNI: 45678901}

	_, err := f.service.CreateEmployee(context.Background(), validCreateRequest())
	require.ErrorIs(t, err, apperrors.ErrDNIExists)
	require.Empty(t, f.events.published)
}

func TestCreateEmployeeRejectsDuplicateEmail(t *testing.T) {
	f := newServiceFixture()
	f.employeeRepo.byEmail["ana@empresa.com"] = &entities.Employee{ID: uuid.New()}

	_, err := f.service.CreateEmployee(context.Background(), validCreateRequest())
	require.ErrorIs(t, err, apperrors.ErrEmailExists)
}

func TestCreateEmployeeRejectsInvalidDNI(t *testing.T) {
	for _, dni := range []int64{1234567, 123456789, 0} {
		f := newServiceFixture()
		req := validCreateRequest()
		req.DNI = dni

		_, err := f.service.CreateEmployee(context.Background(), req)
		require.ErrorIs(t, err, apperrors.ErrInvalidDNI, "dni %d", dni)
	}
}

func TestCreateEmployeeDuplicateDNIWinsOverFormat(t *testing.T) {
	// La unicidad se chequea antes que el formato: un dni duplicado e
	// inválido a la vez reporta dni-exist
	f := newServiceFixture()
	f.personRepo.byDNI[123] = &entities.Person{ID: uuid.New(), DNI: 123}
	req := validCreateRequest()
	req.DNI = 123

	_, err := f.service.CreateEmployee(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrDNIExists)
}

func TestCreateEmployeeRejectsUnknownRole(t *testing.T) {
	f := newServiceFixture()
	req := validCreateRequest()
	req.Role = "SUPERVISOR"

	_, err := f.service.CreateEmployee(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrRoleNotFound)
}

func TestCreateEmployeeValidRequestReachesTransaction(t *testing.T) {
	// Con todas las precondiciones válidas el flujo llega a abrir la
	// transacción de persistencia
	f := newServiceFixture()
	f.roleRepo.byName["EMPLOYEE"] = &entities.Role{ID: uuid.New(), Name: "EMPLOYEE"}
	txErr := errors.New("db down")
	f.employeeRepo.beginTxErr = txErr

	_, err := f.service.CreateEmployee(context.Background(), validCreateRequest())
	require.ErrorIs(t, err, txErr)
	require.Empty(t, f.events.published)
}

// ----------------------------------------------------------------------------
// Lecturas
// ----------------------------------------------------------------------------

func TestGetEmployeeNotFound(t *testing.T) {
	f := newServiceFixture()
	dni := int64(45678901)

	_, err := f.service.GetEmployee(context.Background(), repositories.EmployeeFinder{DNI: &dni})
	require.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestListEmployeesProjectsGraph(t *testing.T) {
	f := newServiceFixture()
	f.employeeRepo.graph = employeeGraphFixture()

	responses, err := f.service.ListEmployees(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, int64(45678901), responses[0].DNI)
	require.Equal(t, "Active", responses[0].Status)
}

func TestListEmployeesEmpty(t *testing.T) {
	f := newServiceFixture()

	responses, err := f.service.ListEmployees(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, responses)
	require.Empty(t, responses)
}

// ----------------------------------------------------------------------------
// UpdateEmployee
// ----------------------------------------------------------------------------

func TestUpdateEmployeeUnknownDNI(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.UpdateEmployee(context.Background(), 45678901, RoleAdministrator, ChangeTypeUpdate, &UpdateEmployeeRequest{})
	require.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestUpdateEmployeeUnknownChangeType(t *testing.T) {
	f := newServiceFixture()
	f.employeeRepo.graph = employeeGraphFixture()

	_, err := f.service.UpdateEmployee(context.Background(), 45678901, RoleAdministrator, "PATCH", &UpdateEmployeeRequest{})
	require.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestDeleteEmployeeRequiresAdministrator(t *testing.T) {
	f := newServiceFixture()
	f.employeeRepo.graph = employeeGraphFixture()

	_, err := f.service.UpdateEmployee(context.Background(), 45678901, "EMPLOYEE", ChangeTypeDelete, nil)
	require.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
	require.Empty(t, f.employeeRepo.statusCalls)
	require.Empty(t, f.events.published)
}

func TestDeleteEmployeeSoftDeletes(t *testing.T) {
	f := newServiceFixture()
	graph := employeeGraphFixture()
	f.employeeRepo.graph = graph

	result, err := f.service.UpdateEmployee(context.Background(), 45678901, RoleAdministrator, ChangeTypeDelete, nil)
	require.NoError(t, err)
	require.Equal(t, "employee-deleted", result.Message)

	require.NotNil(t, result.Employee)
	require.Equal(t, graph.ID, result.Employee.ID)
	require.Equal(t, int64(45678901), result.Employee.DNI)
	require.Equal(t, "Inactive", result.Employee.Status)

	// El borrado es lógico: sólo cambia el status a INACTIVE
	require.Equal(t, []statusCall{{id: graph.ID, status: entities.StatusInactive}}, f.employeeRepo.statusCalls)

	require.Len(t, f.events.published, 1)
	require.Equal(t, EventEmployeeDeleted, f.events.published[0].routingKey)
}

func TestUpdateEmployeeAppliesPartialFields(t *testing.T) {
	f := newServiceFixture()
	graph := employeeGraphFixture()
	f.employeeRepo.graph = graph

	newEmail := "ana.nueva@empresa.com"
	newPhone := "912345678"
	result, err := f.service.UpdateEmployee(context.Background(), 45678901, "EMPLOYEE", ChangeTypeUpdate, &UpdateEmployeeRequest{
		Email:       &newEmail,
		MobilePhone: &newPhone,
	})
	require.NoError(t, err)
	require.Equal(t, "employee-updated", result.Message)
	require.Nil(t, result.Employee)

	require.Len(t, f.employeeRepo.updated, 1)
	require.Equal(t, newEmail, f.employeeRepo.updated[0].Email)
	require.Equal(t, newPhone, f.employeeRepo.updated[0].MobilePhone)
	// Los campos ausentes no se tocan
	require.Equal(t, "Av. Siempre Viva 123", f.employeeRepo.updated[0].HomeAddress)

	// El username sigue al email nuevo
	require.Equal(t, newEmail, f.userRepo.updatedUsernames[graph.User.ID])

	require.Len(t, f.events.published, 1)
	require.Equal(t, EventEmployeeUpdated, f.events.published[0].routingKey)
}

func TestUpdateEmployeeDropsInvalidDNISilently(t *testing.T) {
	f := newServiceFixture()
	f.employeeRepo.graph = employeeGraphFixture()

	badDNI := int64(123)
	firstName := "Ana Maria"
	result, err := f.service.UpdateEmployee(context.Background(), 45678901, "EMPLOYEE", ChangeTypeUpdate, &UpdateEmployeeRequest{
		DNI:       &badDNI,
		FirstName: &firstName,
	})
	require.NoError(t, err)
	require.Equal(t, "employee-updated", result.Message)

	// El dni inválido se descarta sin rechazar el resto del cambio
	require.Len(t, f.personRepo.updated, 1)
	require.Equal(t, int64(45678901), f.personRepo.updated[0].DNI)
	require.Equal(t, "Ana Maria", f.personRepo.updated[0].FirstName)
}

func TestUpdateEmployeeAcceptsValidDNI(t *testing.T) {
	f := newServiceFixture()
	f.employeeRepo.graph = employeeGraphFixture()

	newDNI := int64(87654321)
	_, err := f.service.UpdateEmployee(context.Background(), 45678901, "EMPLOYEE", ChangeTypeUpdate, &UpdateEmployeeRequest{
		DNI: &newDNI,
	})
	require.NoError(t, err)

	require.Len(t, f.personRepo.updated, 1)
	require.Equal(t, newDNI, f.personRepo.updated[0].DNI)
}

func TestUpdateEmployeeHashesNewPassword(t *testing.T) {
	f := newServiceFixture()
	graph := employeeGraphFixture()
	f.employeeRepo.graph = graph

	newPassword := "secreto-nuevo"
	_, err := f.service.UpdateEmployee(context.Background(), 45678901, "EMPLOYEE", ChangeTypeUpdate, &UpdateEmployeeRequest{
		Password: &newPassword,
	})
	require.NoError(t, err)

	stored := f.userRepo.updatedPasswords[graph.User.ID]
	require.NotEmpty(t, stored)
	require.NotEqual(t, newPassword, stored)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(newPassword)))
}

// ----------------------------------------------------------------------------
// RegisterVaccination
// ----------------------------------------------------------------------------

func TestRegisterVaccinationUnknownEmployee(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.RegisterVaccination(context.Background(), 45678901, &RegisterVaccinationRequest{VaccineID: uuid.New()})
	require.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestRegisterVaccinationUnknownVaccine(t *testing.T) {
	f := newServiceFixture()
	f.employeeRepo.graph = employeeGraphFixture()

	_, err := f.service.RegisterVaccination(context.Background(), 45678901, &RegisterVaccinationRequest{VaccineID: uuid.New()})
	require.ErrorIs(t, err, apperrors.ErrVaccineNotFound)
	require.Empty(t, f.vaccinationRepo.created)
}

func TestRegisterVaccinationMarksEmployeeVaccinated(t *testing.T) {
	f := newServiceFixture()
	graph := employeeGraphFixture()
	f.employeeRepo.graph = graph

	vaccine := &entities.Vaccine{ID: uuid.New(), VaccineType: "Pfizer", Status: entities.StatusActive}
	f.vaccineRepo.byID[vaccine.ID] = vaccine

	vaccinationDate := time.Date(2021, 5, 10, 0, 0, 0, 0, time.UTC)
	response, err := f.service.RegisterVaccination(context.Background(), 45678901, &RegisterVaccinationRequest{
		VaccineID:       vaccine.ID,
		DoseNumber:      2,
		VaccinationDate: vaccinationDate,
	})
	require.NoError(t, err)

	require.Len(t, f.vaccinationRepo.created, 1)
	created := f.vaccinationRepo.created[0]
	require.Equal(t, graph.ID, created.EmployeeID)
	require.Equal(t, vaccine.ID, created.VaccineID)
	require.Equal(t, 2, created.DoseNumber)
	require.Equal(t, vaccinationDate, created.VaccinationDate)
	require.Equal(t, entities.StatusActive, created.Status)

	require.Len(t, f.employeeRepo.updated, 1)
	require.True(t, f.employeeRepo.updated[0].VaccinationStatus)

	require.True(t, response.VaccinationStatus)
}
