package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"employee-microservice-go/pkg/domain/apperrors"
	"employee-microservice-go/pkg/domain/entities"
	"employee-microservice-go/pkg/infrastructure/auth"
)

func newAuthFixture(t *testing.T) (*serviceFixture, AuthService) {
	t.Helper()
	f := newServiceFixture()
	jwtService := auth.NewJWTService("clave-de-prueba", time.Hour)
	return f, NewAuthService(f.userRepo, f.userRoleRepo, f.employeeRepo, jwtService)
}

func TestLoginUnknownUser(t *testing.T) {
	_, authService := newAuthFixture(t)

	_, err := authService.Login(context.Background(), "nadie@empresa.com", "password123")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	f, authService := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	f.userRepo.byUsername["ana@empresa.com"] = &entities.User{
		ID:       uuid.New(),
		Username: "ana@empresa.com",
		Password: string(hash),
	}

	_, err = authService.Login(context.Background(), "ana@empresa.com", "otra-cosa")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginIssuesTokenWithRoleAndDNI(t *testing.T) {
	f, authService := newAuthFixture(t)

	graph := employeeGraphFixture()
	f.employeeRepo.graph = graph

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &entities.User{
		ID:         graph.User.ID,
		EmployeeID: graph.ID,
		Username:   "ana@empresa.com",
		Password:   string(hash),
	}
	f.userRepo.byUsername["ana@empresa.com"] = user

	roleID := uuid.New()
	f.userRoleRepo.byUser = []*entities.UserRole{
		{ID: uuid.New(), UserID: user.ID, RoleID: roleID, Role: &entities.Role{ID: roleID, Name: RoleAdministrator}},
	}

	token, err := authService.Login(context.Background(), "ana@empresa.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authService.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.Equal(t, int64(45678901), claims.DNI)
	require.Equal(t, RoleAdministrator, claims.Role)
}
