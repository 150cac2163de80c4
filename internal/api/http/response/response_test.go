package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/testutil"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		kind model.ErrorKind
		want int
	}{
		{model.KindBadEmail, http.StatusBadRequest},
		{model.KindValidation, http.StatusBadRequest},
		{model.KindWrongToken, http.StatusBadRequest},
		{model.KindConfirmationExpired, http.StatusBadRequest},
		{model.KindAccountExists, http.StatusConflict},
		{model.KindAlreadyConfirmed, http.StatusConflict},
		{model.KindNoUser, http.StatusNotFound},
		{model.KindNotFound, http.StatusNotFound},
		{model.KindInvalidPassword, http.StatusUnauthorized},
		{model.KindCannotLogIn, http.StatusUnauthorized},
		{model.KindSessionRevoked, http.StatusUnauthorized},
		{model.KindNotTesting, http.StatusForbidden},
		{model.ErrorKind("Unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.kind))
		})
	}
}

func TestError_AccountError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/register", nil)

	Error(w, r, testutil.MakeNoopLogger(), model.NewAccountExistsError("phone", "+12025551234"))

	assert.Equal(t, http.StatusConflict, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AccountExists", body.Error)
	assert.Equal(t, "phone", body.Field)
	assert.False(t, body.Success)
}

func TestError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/register", nil)

	Error(w, r, testutil.MakeNoopLogger(), errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), KindInternal)
}
