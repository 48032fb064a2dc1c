package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"employee-microservice-go/pkg/domain/repositories"
)

// Tipos de cambio que acepta UpdateEmployee
const (
	ChangeTypeUpdate = "UPDATE"
	ChangeTypeDelete = "DELETE"
)

// RoleAdministrator es el único rol autorizado para el borrado lógico
const RoleAdministrator = "ADMINISTRATOR"

// CreateEmployeeRequest es el DTO de alta de empleado.
type CreateEmployeeRequest struct {
	DNI         int64     `json:"dni"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	BirthDate   time.Time `json:"birthDate"`
	HomeAddress string    `json:"homeAddress"`
	MobilePhone string    `json:"mobilePhone"`
	Role        string    `json:"role"`
}

// UpdateEmployeeRequest es el DTO parcial de actualización: sólo los
// campos presentes sobreescriben.
type UpdateEmployeeRequest struct {
	DNI               *int64     `json:"dni,omitempty"`
	FirstName         *string    `json:"firstName,omitempty"`
	LastName          *string    `json:"lastName,omitempty"`
	Email             *string    `json:"email,omitempty"`
	BirthDate         *time.Time `json:"birthDate,omitempty"`
	HomeAddress       *string    `json:"homeAddress,omitempty"`
	MobilePhone       *string    `json:"mobilePhone,omitempty"`
	VaccinationStatus *bool      `json:"vaccinationStatus,omitempty"`
	Username          *string    `json:"username,omitempty"`
	Password          *string    `json:"password,omitempty"`
}

// RegisterVaccinationRequest registra una dosis aplicada a un empleado.
type RegisterVaccinationRequest struct {
	VaccineID       uuid.UUID `json:"vaccineId"`
	DoseNumber      int       `json:"doseNumber"`
	VaccinationDate time.Time `json:"vaccinationDate"`
}

// EmployeeVaccineResponse es el sub-registro de vacuna dentro de la
// proyección plana del empleado.
type EmployeeVaccineResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	DoseNumber            int       `json:"doseNumber"`
	VaccinationDate       time.Time `json:"vaccinationDate"`
	EmployeeVaccinationID uuid.UUID `json:"employeeVaccinationId"`
}

// RoleResponse es el sub-registro de rol dentro de la proyección.
type RoleResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// EmployeeResponse es la proyección plana del grafo del empleado.
// Vaccines y Roles son null (no lista vacía) cuando no hay filas.
type EmployeeResponse struct {
	ID                uuid.UUID                  `json:"id"`
	DNI               int64                      `json:"dni"`
	FirstName         string                     `json:"firstName"`
	LastName          string                     `json:"lastName"`
	Email             string                     `json:"email"`
	BirthDate         time.Time                  `json:"birthDate"`
	HomeAddress       string                     `json:"homeAddress"`
	MobilePhone       string                     `json:"mobilePhone"`
	VaccinationStatus bool                       `json:"vaccinationStatus"`
	Status            string                     `json:"status"`
	Username          *string                    `json:"username"`
	Password          *string                    `json:"password"`
	Vaccines          []*EmployeeVaccineResponse `json:"vaccines"`
	Roles             []*RoleResponse            `json:"roles"`
}

// CreateEmployeeResponse es la variante de proyección del alta: en vez
// de la lista de roles lleva el nombre del rol recién asignado.
type CreateEmployeeResponse struct {
	ID                uuid.UUID `json:"id"`
	DNI               int64     `json:"dni"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	BirthDate         time.Time `json:"birthDate"`
	HomeAddress       string    `json:"homeAddress"`
	MobilePhone       string    `json:"mobilePhone"`
	VaccinationStatus bool      `json:"vaccinationStatus"`
	Status            string    `json:"status"`
	Username          string    `json:"username"`
	Password          string    `json:"password"`
	Role              string    `json:"role"`
}

// UpdateEmployeeResponse confirma una actualización o un borrado
// lógico; Employee sólo viene en el caso DELETE, con los campos
// identificatorios previos y el status ya en "Inactive".
type UpdateEmployeeResponse struct {
	Message  string                   `json:"message"`
	Employee *DeletedEmployeeResponse `json:"employee,omitempty"`
}

type DeletedEmployeeResponse struct {
	ID        uuid.UUID `json:"id"`
	DNI       int64     `json:"dni"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
}

// EmployeeService orquesta las lecturas del grafo, la proyección y el
// flujo de mutaciones multi-entidad.
type EmployeeService interface {
	ListEmployees(ctx context.Context, filters *repositories.EmployeeFilters) ([]*EmployeeResponse, error)
	GetEmployee(ctx context.Context, finder repositories.EmployeeFinder) (*EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*CreateEmployeeResponse, error)
	UpdateEmployee(ctx context.Context, dni int64, callerRole, changeType string, req *UpdateEmployeeRequest) (*UpdateEmployeeResponse, error)
	RegisterVaccination(ctx context.Context, dni int64, req *RegisterVaccinationRequest) (*EmployeeResponse, error)
}
