package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"grid-balance/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoveredResponse(t *testing.T, panicWith any) (*httptest.ResponseRecorder, models.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic(panicWith) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestErrorHandler_RecoversFromErrorPanic(t *testing.T) {
	w, resp := recoveredResponse(t, errors.New("dispatch state corrupted"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "dispatch state corrupted", resp.Error.Message)
}

func TestErrorHandler_RecoversFromStringPanic(t *testing.T) {
	w, resp := recoveredResponse(t, "unexpected state")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "unexpected state", resp.Error.Message)
}

func TestErrorHandler_GenericMessageForOtherValues(t *testing.T) {
	w, resp := recoveredResponse(t, 42)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
}
