package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewJWTService("clave-de-prueba", time.Hour)

	token, err := service.GenerateToken(&TokenClaims{
		UserID: "user-123",
		DNI:    45678901,
		Role:   "ADMINISTRATOR",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, int64(45678901), claims.DNI)
	require.Equal(t, "ADMINISTRATOR", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("clave-a", time.Hour)
	verifier := NewJWTService("clave-b", time.Hour)

	token, err := issuer.GenerateToken(&TokenClaims{UserID: "user-123"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	service := NewJWTService("clave-de-prueba", -time.Minute)

	token, err := service.GenerateToken(&TokenClaims{UserID: "user-123"})
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	service := NewJWTService("clave-de-prueba", time.Hour)

	_, err := service.ValidateToken("no-es-un-jwt")
	require.Error(t, err)
}
