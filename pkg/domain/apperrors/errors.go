package apperrors

import "errors"

// Errores de negocio expuestos al cliente. Cada precondición fallida
// tiene su propio error, nunca una falla genérica. Los errores de la
// base de datos se propagan sin traducir.
var (
	ErrDNIExists        = errors.New("dni-exist")
	ErrEmailExists      = errors.New("email-exist")
	ErrInvalidDNI       = errors.New("invalid-dni")
	ErrEmployeeNotFound = errors.New("employee-not-found")
	ErrVaccineNotFound  = errors.New("vaccine-not-found")
	ErrRoleNotFound     = errors.New("role-not-found")
	ErrInvalidCredentials = errors.New("invalid-credentials")
)
