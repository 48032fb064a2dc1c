package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"employee-microservice-go/pkg/domain/apperrors"
	"employee-microservice-go/pkg/domain/repositories"
	"employee-microservice-go/pkg/infrastructure/auth"
)

// AuthService autentica usuarios y emite tokens con el rol, que el
// flujo de mutaciones usa para autorizar el borrado lógico.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(tokenString string) (*auth.TokenClaims, error)
}

type authServiceImpl struct {
	userRepo     repositories.UserRepository
	userRoleRepo repositories.UserRoleRepository
	employeeRepo repositories.EmployeeRepository
	jwtService   *auth.JWTService
}

// NewAuthService crea una nueva instancia del servicio de autenticación
func NewAuthService(
	userRepo repositories.UserRepository,
	userRoleRepo repositories.UserRoleRepository,
	employeeRepo repositories.EmployeeRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		userRoleRepo: userRoleRepo,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// Login autentica por username y contraseña y devuelve un JWT con el
// rol del usuario. Credenciales inválidas no distinguen entre usuario
// inexistente y contraseña incorrecta.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	var roleName string
	userRoles, err := s.userRoleRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if len(userRoles) > 0 && userRoles[0].Role != nil {
		roleName = userRoles[0].Role.Name
	}

	var dni int64
	employee, err := s.employeeRepo.FindOne(ctx, repositories.EmployeeFinder{EmployeeID: &user.EmployeeID})
	if err != nil {
		return "", err
	}
	if employee != nil && employee.Person != nil {
		dni = employee.Person.DNI
	}

	claims := &auth.TokenClaims{
		UserID: user.ID.String(),
		DNI:    dni,
		Role:   roleName,
	}

	return s.jwtService.GenerateToken(claims)
}

func (s *authServiceImpl) VerifyToken(tokenString string) (*auth.TokenClaims, error) {
	return s.jwtService.ValidateToken(tokenString)
}
