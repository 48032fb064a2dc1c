package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"employee-microservice-go/pkg/application/ports"
	"employee-microservice-go/pkg/domain/apperrors"
	"employee-microservice-go/pkg/domain/entities"
	"employee-microservice-go/pkg/domain/repositories"
)

// employeeServiceImpl implementa la interfaz EmployeeService
type employeeServiceImpl struct {
	employeeRepo    repositories.EmployeeRepository
	personRepo      repositories.PersonRepository
	userRepo        repositories.UserRepository
	roleRepo        repositories.RoleRepository
	userRoleRepo    repositories.UserRoleRepository
	vaccineRepo     repositories.VaccineRepository
	vaccinationRepo repositories.EmployeeVaccinationRepository
	events          ports.EventPublisher
}

// NewEmployeeService crea una nueva instancia del servicio de empleados
func NewEmployeeService(
	employeeRepo repositories.EmployeeRepository,
	personRepo repositories.PersonRepository,
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	userRoleRepo repositories.UserRoleRepository,
	vaccineRepo repositories.VaccineRepository,
	vaccinationRepo repositories.EmployeeVaccinationRepository,
	events ports.EventPublisher,
) EmployeeService {
	return &employeeServiceImpl{
		employeeRepo:    employeeRepo,
		personRepo:      personRepo,
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		userRoleRepo:    userRoleRepo,
		vaccineRepo:     vaccineRepo,
		vaccinationRepo: vaccinationRepo,
		events:          events,
	}
}

func (s *employeeServiceImpl) ListEmployees(ctx context.Context, filters *repositories.EmployeeFilters) ([]*EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	responses := []*EmployeeResponse{}
	for _, employee := range employees {
		responses = append(responses, projectEmployee(employee))
	}

	return responses, nil
}

func (s *employeeServiceImpl) GetEmployee(ctx context.Context, finder repositories.EmployeeFinder) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindOne(ctx, finder)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.ErrEmployeeNotFound
	}

	return projectEmployee(employee), nil
}

// CreateEmployee valida y crea persona, empleado, usuario y rol de
// usuario como una unidad: los cuatro inserts van dentro de una misma
// transacción y cualquier falla revierte todo.
func (s *employeeServiceImpl) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*CreateEmployeeResponse, error) {
	existingPerson, err := s.personRepo.FindByDNI(ctx, req.DNI)
	if err != nil {
		return nil, err
	}
	if existingPerson != nil {
		return nil, apperrors.ErrDNIExists
	}

	existingEmployee, err := s.employeeRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existingEmployee != nil {
		return nil, apperrors.ErrEmailExists
	}

	if !isValidDNI(req.DNI) {
		return nil, apperrors.ErrInvalidDNI
	}

	role, err := s.roleRepo.FindByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.ErrRoleNotFound
	}

	now := time.Now()
	person := &entities.Person{
		ID:        uuid.New(),
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Status:    entities.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	employee := &entities.Employee{
		ID:                uuid.New(),
		PersonID:          person.ID,
		Email:             req.Email,
		BirthDate:         req.BirthDate,
		HomeAddress:       req.HomeAddress,
		MobilePhone:       req.MobilePhone,
		VaccinationStatus: false,
		Status:            entities.StatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// La credencial inicial deriva del dni; en reposo sólo se guarda
	// el hash.
	initialPassword := strconv.FormatInt(req.DNI, 10)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:         uuid.New(),
		EmployeeID: employee.ID,
		Username:   req.Email,
		Password:   string(hashedPassword),
		Status:     entities.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	userRole := &entities.UserRole{
		ID:        uuid.New(),
		UserID:    user.ID,
		RoleID:    role.ID,
		Status:    entities.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.employeeRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.personRepo.Create(ctx, tx, person); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.employeeRepo.Create(ctx, tx, employee); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.userRoleRepo.Create(ctx, tx, userRole); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, EventEmployeeCreated, &EmployeeEvent{
		EmployeeID:      employee.ID,
		DNI:             person.DNI,
		Email:           employee.Email,
		FirstName:       person.FirstName,
		LastName:        person.LastName,
		Username:        user.Username,
		InitialPassword: initialPassword,
		Role:            role.Name,
		OccurredAt:      now,
	})

	return projectCreatedEmployee(employee, person, user, role.Name), nil
}

// UpdateEmployee resuelve actualización o borrado lógico según el tipo
// de cambio y el rol del llamador. Cualquier combinación no contemplada
// cae en employee-not-found.
func (s *employeeServiceImpl) UpdateEmployee(ctx context.Context, dni int64, callerRole, changeType string, req *UpdateEmployeeRequest) (*UpdateEmployeeResponse, error) {
	employee, err := s.employeeRepo.FindOne(ctx, repositories.EmployeeFinder{DNI: &dni})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.ErrEmployeeNotFound
	}

	switch {
	case changeType == ChangeTypeDelete && callerRole == RoleAdministrator:
		return s.softDeleteEmployee(ctx, employee)
	case changeType == ChangeTypeUpdate:
		return s.applyEmployeeUpdate(ctx, employee, req)
	default:
		return nil, apperrors.ErrEmployeeNotFound
	}
}

func (s *employeeServiceImpl) softDeleteEmployee(ctx context.Context, employee *entities.Employee) (*UpdateEmployeeResponse, error) {
	if err := s.employeeRepo.UpdateStatus(ctx, employee.ID, entities.StatusInactive); err != nil {
		return nil, err
	}

	deleted := &DeletedEmployeeResponse{
		ID:     employee.ID,
		Email:  employee.Email,
		Status: entities.StatusInactive.Label(),
	}
	if employee.Person != nil {
		deleted.DNI = employee.Person.DNI
		deleted.FirstName = employee.Person.FirstName
		deleted.LastName = employee.Person.LastName
	}

	s.publishEvent(ctx, EventEmployeeDeleted, &EmployeeEvent{
		EmployeeID: employee.ID,
		DNI:        deleted.DNI,
		Email:      employee.Email,
		FirstName:  deleted.FirstName,
		LastName:   deleted.LastName,
		OccurredAt: time.Now(),
	})

	return &UpdateEmployeeResponse{
		Message:  "employee-deleted",
		Employee: deleted,
	}, nil
}

func (s *employeeServiceImpl) applyEmployeeUpdate(ctx context.Context, employee *entities.Employee, req *UpdateEmployeeRequest) (*UpdateEmployeeResponse, error) {
	if req == nil {
		req = &UpdateEmployeeRequest{}
	}

	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.BirthDate != nil {
		employee.BirthDate = *req.BirthDate
	}
	if req.HomeAddress != nil {
		employee.HomeAddress = *req.HomeAddress
	}
	if req.MobilePhone != nil {
		employee.MobilePhone = *req.MobilePhone
	}
	if req.VaccinationStatus != nil {
		employee.VaccinationStatus = *req.VaccinationStatus
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	if employee.Person != nil {
		person := employee.Person
		if req.FirstName != nil {
			person.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			person.LastName = *req.LastName
		}
		// Un dni nuevo que no pasa el formato se descarta en silencio,
		// no rechaza la operación.
		if req.DNI != nil && isValidDNI(*req.DNI) {
			person.DNI = *req.DNI
		}
		if err := s.personRepo.Update(ctx, person); err != nil {
			return nil, err
		}
	}

	if employee.User != nil {
		if req.Password != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			if err := s.userRepo.UpdatePassword(ctx, employee.User.ID, string(hashedPassword), nil); err != nil {
				return nil, err
			}
		}

		// El username sigue al email nuevo; si no hay email, al
		// username explícito.
		var newUsername string
		if req.Email != nil {
			newUsername = *req.Email
		} else if req.Username != nil {
			newUsername = *req.Username
		}
		if newUsername != "" {
			if err := s.userRepo.UpdateUsername(ctx, employee.User.ID, newUsername); err != nil {
				return nil, err
			}
		}
	}

	var eventDNI int64
	if employee.Person != nil {
		eventDNI = employee.Person.DNI
	}
	s.publishEvent(ctx, EventEmployeeUpdated, &EmployeeEvent{
		EmployeeID: employee.ID,
		DNI:        eventDNI,
		Email:      employee.Email,
		OccurredAt: time.Now(),
	})

	return &UpdateEmployeeResponse{
		Message: "employee-updated",
	}, nil
}

// RegisterVaccination registra una dosis aplicada y marca al empleado
// como vacunado.
func (s *employeeServiceImpl) RegisterVaccination(ctx context.Context, dni int64, req *RegisterVaccinationRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindOne(ctx, repositories.EmployeeFinder{DNI: &dni})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperrors.ErrEmployeeNotFound
	}

	vaccine, err := s.vaccineRepo.FindByID(ctx, req.VaccineID)
	if err != nil {
		return nil, err
	}
	if vaccine == nil {
		return nil, apperrors.ErrVaccineNotFound
	}

	now := time.Now()
	vaccination := &entities.EmployeeVaccination{
		ID:              uuid.New(),
		EmployeeID:      employee.ID,
		VaccineID:       vaccine.ID,
		DoseNumber:      req.DoseNumber,
		VaccinationDate: req.VaccinationDate,
		Status:          entities.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.vaccinationRepo.Create(ctx, vaccination); err != nil {
		return nil, err
	}

	if !employee.VaccinationStatus {
		employee.VaccinationStatus = true
		if err := s.employeeRepo.Update(ctx, employee); err != nil {
			return nil, err
		}
	}

	updated, err := s.employeeRepo.FindOne(ctx, repositories.EmployeeFinder{EmployeeID: &employee.ID})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.ErrEmployeeNotFound
	}

	return projectEmployee(updated), nil
}

// publishEvent publica sin cortar el flujo: la mutación ya está
// confirmada en la base cuando se emite el evento.
func (s *employeeServiceImpl) publishEvent(ctx context.Context, routingKey string, event *EmployeeEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Error publicando evento %s: %v", routingKey, err)
	}
}
