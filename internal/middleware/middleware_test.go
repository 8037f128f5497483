package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/validation"
	"github.com/yigit/edureach/internal/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRateLimiterPerIPAndCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 2, time.Minute)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"), "buckets are per IP")

	now = now.Add(2 * time.Minute)
	rl.Allow("3.3.3.3")
	rl.mu.Lock()
	_, kept := rl.visitors["1.1.1.1"]
	rl.mu.Unlock()
	assert.False(t, kept, "idle buckets are dropped")
}

func TestClassify(t *testing.T) {
	verr := (&validation.Errors{}).Add("email", "x")
	tests := []struct {
		err    error
		status int
	}{
		{verr, http.StatusUnprocessableEntity},
		{apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "x"), http.StatusUnauthorized},
		{&backend.HTTPError{StatusCode: http.StatusUnauthorized}, http.StatusUnauthorized},
		{&backend.HTTPError{StatusCode: http.StatusForbidden}, http.StatusForbidden},
		{&backend.HTTPError{StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{&backend.HTTPError{StatusCode: http.StatusConflict}, http.StatusConflict},
		{&backend.HTTPError{StatusCode: http.StatusBadRequest}, http.StatusBadRequest},
		{&backend.HTTPError{StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
		{fmt.Errorf("%w: dial tcp", apperrors.ErrBackendUnavailable), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, detail := classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.NotNil(t, detail)
	}
}

func TestHandleAPIErrorUsesBackendMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/create-community", nil)

	HandleAPIError(c, &backend.HTTPError{StatusCode: http.StatusConflict, Body: `{"message":"Email sudah terdaftar."}`})

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.Len(t, resp.Toasts, 1)
	assert.Equal(t, dto.ToastError, resp.Toasts[0].Type)
	assert.Equal(t, "Email sudah terdaftar.", resp.Toasts[0].Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, resp.Error.Code)
	assert.Equal(t, dto.ErrorSeverityWarning, resp.Error.Severity)
}

func TestHandleAPIErrorFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)

	HandleAPIError(c, (&validation.Errors{}).Add("email", "Email tidak boleh kosong."))

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email tidak boleh kosong.", resp.FieldErrors["email"])
	assert.Empty(t, resp.Toasts)
}

func newGatedRouter(storage session.Storage) *gin.Engine {
	router := gin.New()
	router.Use(Session(storage, SessionCookie{Name: "sid"}, zerolog.Nop()), NewAuthMiddleware(nil, zerolog.Nop()).Gate())
	ok := func(c *gin.Context) { c.String(http.StatusOK, GetSession(c).Namespace()) }
	router.GET("/", ok)
	router.GET("/home", ok)
	return router
}

func TestSessionCookieAndGate(t *testing.T) {
	storage := session.NewMemoryStorage()
	router := newGatedRouter(storage)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/home", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	sid := cookies[0].Value
	assert.True(t, cookies[0].HttpOnly)

	require.NoError(t, session.NewStore(storage, sid, zerolog.Nop()).SetToken(context.Background(), "tok"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sid, w.Body.String())
}

func TestMalformedCookieStartsNewSession(t *testing.T) {
	router := newGatedRouter(session.NewMemoryStorage())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "../../etc", w.Body.String())
}
