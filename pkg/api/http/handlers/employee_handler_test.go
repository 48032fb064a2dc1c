package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"employee-microservice-go/pkg/domain/apperrors"
)

func TestParseEmployeeFiltersEmptyQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/employees", nil)

	filters := parseEmployeeFilters(r)

	require.Empty(t, filters.DNI)
	require.Empty(t, filters.Email)
	require.Empty(t, filters.CompleteName)
	require.Empty(t, filters.Vaccine)
	require.Nil(t, filters.IsVaccinated)
	require.Nil(t, filters.StartDate)
	require.Nil(t, filters.FinishDate)
}

func TestParseEmployeeFiltersFullQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/api/employees?dni=4567&email=empresa&completeName=ana&vaccine=pfizer&isVaccinated=true&startDate=2021-03-01&finishDate=2021-06-30", nil)

	filters := parseEmployeeFilters(r)

	require.Equal(t, "4567", filters.DNI)
	require.Equal(t, "empresa", filters.Email)
	require.Equal(t, "ana", filters.CompleteName)
	require.Equal(t, "pfizer", filters.Vaccine)
	require.NotNil(t, filters.IsVaccinated)
	require.True(t, *filters.IsVaccinated)
	require.NotNil(t, filters.StartDate)
	require.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), *filters.StartDate)
	require.NotNil(t, filters.FinishDate)
	require.Equal(t, time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC), *filters.FinishDate)
}

func TestParseEmployeeFiltersIgnoresMalformedValues(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/api/employees?isVaccinated=quizas&startDate=hoy", nil)

	filters := parseEmployeeFilters(r)

	require.Nil(t, filters.IsVaccinated)
	require.Nil(t, filters.StartDate)
}

func TestRespondWithServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{apperrors.ErrEmployeeNotFound, http.StatusNotFound},
		{apperrors.ErrVaccineNotFound, http.StatusNotFound},
		{apperrors.ErrDNIExists, http.StatusBadRequest},
		{apperrors.ErrEmailExists, http.StatusBadRequest},
		{apperrors.ErrInvalidDNI, http.StatusBadRequest},
		{apperrors.ErrRoleNotFound, http.StatusBadRequest},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("se cayó la base"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			respondWithServiceError(w, tc.err)

			require.Equal(t, tc.wantStatus, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			require.False(t, response.Success)
			// El código de error de negocio viaja tal cual al cliente
			require.Equal(t, tc.err.Error(), response.Error)
		})
	}
}
