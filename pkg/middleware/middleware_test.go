package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/models/db_models"
	mem "jobboard/pkg/memcache"
	"jobboard/pkg/middleware"
	"jobboard/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	tokens   *utils.TokenManager
	sessions *mem.RevokedSessions
	router   *gin.Engine
}

func newHarness() *harness {
	h := &harness{
		tokens:   utils.NewTokenManager("test-secret", time.Hour, time.Hour, time.Hour),
		sessions: mem.NewRevokedSessions(),
	}
	auth := middleware.NewAuthenticator(h.tokens, h.sessions, "session")

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware(), auth.LoadSession())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/jobs", middleware.RequireRole(db_models.RoleUser), ok)
	r.GET("/admin", middleware.RequireRole(db_models.RoleAdmin), ok)
	r.GET("/login", middleware.RedirectIfAuthenticated("/"), ok)
	h.router = r
	return h
}

func (h *harness) session(t *testing.T, role db_models.Role) (string, *utils.Claims) {
	t.Helper()
	token, claims, err := h.tokens.CreateSessionToken(uuid.New(), string(role))
	require.NoError(t, err)
	return token, claims
}

func (h *harness) get(path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	h := newHarness()
	userToken, _ := h.session(t, db_models.RoleUser)
	adminToken, _ := h.session(t, db_models.RoleAdmin)

	tests := []struct {
		name     string
		path     string
		token    string
		status   int
		location string
	}{
		{"anonymous to user page", "/jobs", "", http.StatusFound, "/login?next=%2Fjobs"},
		{"anonymous to admin page", "/admin", "", http.StatusFound, "/login?next=%2Fadmin"},
		{"user on user page", "/jobs", userToken, http.StatusOK, ""},
		{"user on admin page", "/admin", userToken, http.StatusFound, "/login?next=%2Fadmin"},
		{"admin on admin page", "/admin", adminToken, http.StatusOK, ""},
		{"admin on user page", "/jobs", adminToken, http.StatusFound, "/admin"},
		{"admin on user page with next", "/jobs?next=/blogs", adminToken, http.StatusFound, "/blogs"},
		{"admin with foreign next", "/jobs?next=//evil.example", adminToken, http.StatusFound, "/admin"},
		{"garbage token", "/jobs", "not-a-jwt", http.StatusFound, "/login?next=%2Fjobs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.get(tt.path, tt.token)
			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestBearerHeaderIsAccepted(t *testing.T) {
	h := newHarness()
	token, _ := h.session(t, db_models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRevokedSessionIsAnonymous(t *testing.T) {
	h := newHarness()
	token, claims := h.session(t, db_models.RoleUser)
	require.NoError(t, h.sessions.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	w := h.get("/jobs", token)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	h := newHarness()
	token, _ := h.session(t, db_models.RoleUser)

	assert.Equal(t, http.StatusOK, h.get("/login", "").Code)

	w := h.get("/login", token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestTraceID(t *testing.T) {
	h := newHarness()

	w := h.get("/login", "")
	_, err := uuid.Parse(w.Header().Get(middleware.TraceHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	inbound := uuid.NewString()
	req.Header.Set(middleware.TraceHeader, inbound)
	w = httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.Equal(t, inbound, w.Header().Get(middleware.TraceHeader))
}

func TestRateLimit_InProcess(t *testing.T) {
	r := gin.New()
	r.POST("/login", middleware.RateLimit(nil, 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestSafeNext(t *testing.T) {
	for _, bad := range []string{"", "jobs", "//evil.example", "/\\evil.example", "https://evil.example"} {
		_, ok := middleware.SafeNext(bad)
		assert.False(t, ok, bad)
	}
	next, ok := middleware.SafeNext("/savedjobs")
	assert.True(t, ok)
	assert.Equal(t, "/savedjobs", next)
}
