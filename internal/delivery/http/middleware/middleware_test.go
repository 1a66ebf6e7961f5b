package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"internview-backend/internal/delivery/http/middleware"
	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"
	"internview-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	users map[string]*domain.User
	pass  map[string]string
	err   error
}

func (f *fakeUsers) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Login == login && f.pass[login] == password {
			return u, nil
		}
	}
	return nil, apperror.Unauthorized("Invalid credentials")
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("User not found")
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users: map[string]*domain.User{"u1": {ID: "u1", Login: "anna", Role: domain.RoleRecruiter}},
		pass:  map[string]string{"anna": "secret"},
	}
}

func authRouter(tokens *security.TokenIssuer, users middleware.UserLookup) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.GET("/me", middleware.AuthMiddleware(tokens, users), func(c *gin.Context) {
		p := middleware.PrincipalFrom(c)
		response.Success(c, http.StatusOK, "ok", gin.H{"id": p.UserID, "role": p.Role})
	})
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenIssuer("test-secret", time.Hour)

	t.Run("Should accept Basic credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.SetBasicAuth("anna", "secret")
		w := httptest.NewRecorder()
		authRouter(tokens, newFakeUsers()).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "u1", data["id"])
		assert.Equal(t, "recruiter", data["role"])
	})

	t.Run("Should reject wrong Basic credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.SetBasicAuth("anna", "nope")
		w := httptest.NewRecorder()
		authRouter(tokens, newFakeUsers()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, `Basic realm="internview"`, w.Header().Get("WWW-Authenticate"))
	})

	t.Run("Should accept a Bearer token and take the role from the store", func(t *testing.T) {
		token, _, err := tokens.Issue("u1", "intern")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		authRouter(tokens, newFakeUsers()).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "recruiter", data["role"])
	})

	t.Run("Should reject a token for a deleted user", func(t *testing.T) {
		token, _, err := tokens.Issue("gone", "intern")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		authRouter(tokens, newFakeUsers()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject Bearer tokens when no secret is configured", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		authRouter(security.NewTokenIssuer("", 0), newFakeUsers()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should require the header", func(t *testing.T) {
		w := httptest.NewRecorder()
		authRouter(tokens, newFakeUsers()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["request_id"])
	})

	t.Run("Should surface store failures as 500", func(t *testing.T) {
		users := newFakeUsers()
		users.err = apperror.Internal(errors.New("db down"))
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.SetBasicAuth("anna", "secret")
		w := httptest.NewRecorder()
		authRouter(tokens, users).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) { _ = c.Error(apperror.Conflict("taken")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("secret detail")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "taken", decode(t, w)["message"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { response.Success(c, http.StatusOK, "ok", nil) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "abc-123", decode(t, w)["request_id"])

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "bad id\nwith newline")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestRateLimitInMemory(t *testing.T) {
	cfg := middleware.LoginRateLimitConfig(2)
	cfg.KeyPrefix = "rl:test-login:"
	r := gin.New()
	r.POST("/login", middleware.RateLimitMiddleware(nil, cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
		if i == 2 {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestUploadRateLimitSkipsJSON(t *testing.T) {
	cfg := middleware.UploadRateLimitConfig(1)
	cfg.KeyPrefix = "rl:test-upload:"
	r := gin.New()
	r.POST("/cvs", middleware.RateLimitMiddleware(nil, cfg), func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func(contentType string) int {
		req := httptest.NewRequest(http.MethodPost, "/cvs", nil)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, send("application/json"))
	assert.Equal(t, http.StatusCreated, send("application/json"))
	assert.Equal(t, http.StatusCreated, send("multipart/form-data; boundary=x"))
	assert.Equal(t, http.StatusTooManyRequests, send("multipart/form-data; boundary=x"))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
