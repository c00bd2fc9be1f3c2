package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/caixa-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestError_MapsAppError(t *testing.T) {
	c, w := newTestContext(t)

	Error(c, apperror.NewConflictError("Caixa already open"))

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Caixa already open", body.Message)
	assert.Empty(t, c.Errors)
}

func TestError_HidesUnknownCause(t *testing.T) {
	c, w := newTestContext(t)

	Error(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors.Last().Error(), "connection refused")
}

func TestMeta_ReusesRequestID(t *testing.T) {
	c, w := newTestContext(t)
	c.Set(RequestIDKey, "req-42")

	OK(c, "ok", nil)

	body := decode(t, w)
	require.NotNil(t, body.Meta)
	assert.Equal(t, "req-42", body.Meta.RequestID)
}

func TestMeta_WithoutRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.NotPanics(t, func() { BadRequest(c, "bad") })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w).Meta.RequestID)
}

func TestFile_SetsAttachment(t *testing.T) {
	c, w := newTestContext(t)

	File(c, "12345-17-10-2026.pdf", "application/pdf", []byte("%PDF-1.4"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="12345-17-10-2026.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestHTML_NotCached(t *testing.T) {
	c, w := newTestContext(t)

	HTML(c, "<html></html>")

	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "<html></html>", w.Body.String())
}
