package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hostpanel/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func doRespond(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	respondError(c, zap.NewNop(), err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body["error"]
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apperr.New(apperr.BadRequest, "bad input"), http.StatusBadRequest, "bad input"},
		{apperr.New(apperr.Unauthorized, "invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{apperr.New(apperr.NotFound, "vps not found"), http.StatusNotFound, "vps not found"},
		{apperr.New(apperr.Internal, "something broke"), http.StatusInternalServerError, "something broke"},
	}
	for _, tc := range cases {
		status, message := doRespond(t, tc.err)
		assert.Equal(t, tc.status, status)
		assert.Equal(t, tc.message, message)
	}
}

func TestRespondErrorHidesDatabaseDetail(t *testing.T) {
	err := apperr.Wrap(apperr.Database, "database error",
		errors.New(`pq: relation "users" does not exist`))

	status, message := doRespond(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "database error", message)
	assert.NotContains(t, message, "pq:")
}

func TestRespondErrorPlainErrorIsInternal(t *testing.T) {
	status, _ := doRespond(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
}
