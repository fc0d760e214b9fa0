package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamjokbo/jokbo/internal/ctxkeys"
	"github.com/teamjokbo/jokbo/internal/model"
	"github.com/teamjokbo/jokbo/internal/repository"
	"github.com/teamjokbo/jokbo/internal/service"
)

type staticUserRepository struct {
	user *model.User
}

func (s *staticUserRepository) Create(*model.User) error { return nil }
func (s *staticUserRepository) Update(*model.User) error { return nil }

func (s *staticUserRepository) ByID(id string) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *staticUserRepository) ByEmail(email string) (*model.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func TestRequireAuth(t *testing.T) {
	next := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	next(rec, httptest.NewRequest(http.MethodGet, "/api/entries", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "authentication required"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u-1"}))
	rec = httptest.NewRecorder()
	next(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_ResolvesCookieToUser(t *testing.T) {
	user := &model.User{ID: "u-1", Email: "gilee05@gsenc.com"}
	users := &staticUserRepository{user: user}
	authService := service.NewAuthService(users, nil, nil, "test-secret", false, time.Hour, time.Minute)

	token, err := authService.GenerateJWT(user)
	require.NoError(t, err)

	var seen *model.User
	wrapped := AuthMiddleware(authService, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.User(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "gilee05@gsenc.com", seen.Email)
}

func TestAuthMiddleware_InvalidTokenClearsCookie(t *testing.T) {
	users := &staticUserRepository{}
	authService := service.NewAuthService(users, nil, nil, "test-secret", false, time.Hour, time.Minute)

	var seen *model.User
	wrapped := AuthMiddleware(authService, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.User(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Nil(t, seen, "the request continues unauthenticated")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestAuthMiddleware_NoCookiePassesThrough(t *testing.T) {
	users := &staticUserRepository{}
	authService := service.NewAuthService(users, nil, nil, "test-secret", false, time.Hour, time.Minute)

	called := false
	wrapped := AuthMiddleware(authService, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, ctxkeys.User(r.Context()))
	}))

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
