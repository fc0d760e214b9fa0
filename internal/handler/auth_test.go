package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamjokbo/jokbo/internal/ctxkeys"
	"github.com/teamjokbo/jokbo/internal/model"
	"github.com/teamjokbo/jokbo/internal/repository"
	"github.com/teamjokbo/jokbo/internal/service"
)

type memUserRepository struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (m *memUserRepository) Create(user *model.User) error {
	copied := *user
	m.byID[user.ID] = &copied
	m.byEmail[user.Email] = &copied
	return nil
}

func (m *memUserRepository) ByID(id string) (*model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepository) ByEmail(email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepository) Update(user *model.User) error {
	copied := *user
	m.byID[user.ID] = &copied
	m.byEmail[user.Email] = &copied
	return nil
}

type memTokenRepository struct {
	tokens map[string]*model.Token
}

func newMemTokenRepository() *memTokenRepository {
	return &memTokenRepository{tokens: make(map[string]*model.Token)}
}

func (m *memTokenRepository) Create(token *model.Token) error {
	copied := *token
	m.tokens[token.Token] = &copied
	return nil
}

func (m *memTokenRepository) ConsumeToken(token string) (*model.Token, error) {
	t, ok := m.tokens[token]
	if !ok || !t.IsValid() {
		return nil, repository.ErrTokenNotFound
	}
	now := time.Now()
	t.UsedAt = &now
	copied := *t
	return &copied, nil
}

func (m *memTokenRepository) DeleteByUserAndType(userID, tokenType string) error {
	for k, t := range m.tokens {
		if t.UserID == userID && t.Type == tokenType {
			delete(m.tokens, k)
		}
	}
	return nil
}

func newAuthTestHandler() (*authHandler, *service.AuthService, *memUserRepository, *memTokenRepository) {
	users := newMemUserRepository()
	tokens := newMemTokenRepository()
	email := service.NewEmailService("", "jokbo@gsenc.com", "http://localhost:8090", "Jokbo", true)
	authService := service.NewAuthService(users, tokens, email, "test-secret", false, time.Hour, 10*time.Minute)
	return NewAuthHandler(authService, users), authService, users, tokens
}

func seedUserWithToken(t *testing.T, users *memUserRepository, tokens *memTokenRepository) (*model.User, string) {
	t.Helper()

	user := &model.User{ID: "u-1", Email: "gilee05@gsenc.com", CreatedAt: time.Now()}
	require.NoError(t, users.Create(user))
	require.NoError(t, tokens.Create(&model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypeMagicLink,
		Token:     "raw-magic-token",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))
	return user, "raw-magic-token"
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	return nil
}

func TestAlertMessage(t *testing.T) {
	assert.Equal(t, "로그인이 거부되었습니다. 링크가 취소되었거나 권한이 없습니다.", AlertMessage("access_denied"))
	assert.Equal(t, "로그인 링크가 만료되었습니다. 새 링크를 요청해 주세요.", AlertMessage("otp_expired"))
	assert.Equal(t, alertGeneric, AlertMessage("something_else"))
}

func TestCallback_ErrorParamWins(t *testing.T) {
	h, _, users, tokens := newAuthTestHandler()
	_, raw := seedUserWithToken(t, users, tokens)

	// Even with a redeemable code present, the error code takes precedence.
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?error=access_denied&code="+raw, nil)
	rec := httptest.NewRecorder()

	h.Callback(rec, req)

	res := rec.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/?alert=access_denied", res.Header.Get("Location"))
	assert.Nil(t, sessionCookie(res), "a failed callback must not install a session")
}

func TestCallback_CodeRedeemsToken(t *testing.T) {
	h, _, users, tokens := newAuthTestHandler()
	_, raw := seedUserWithToken(t, users, tokens)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code="+raw, nil)
	rec := httptest.NewRecorder()

	h.Callback(rec, req)

	res := rec.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
	cookie := sessionCookie(res)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
}

func TestCallback_ConsumedCodeRedirectsExpired(t *testing.T) {
	h, _, users, tokens := newAuthTestHandler()
	_, raw := seedUserWithToken(t, users, tokens)

	first := httptest.NewRecorder()
	h.Callback(first, httptest.NewRequest(http.MethodGet, "/auth/callback?code="+raw, nil))
	require.Equal(t, "/", first.Result().Header.Get("Location"))

	second := httptest.NewRecorder()
	h.Callback(second, httptest.NewRequest(http.MethodGet, "/auth/callback?code="+raw, nil))

	res := second.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/?alert=otp_expired", res.Header.Get("Location"))
	assert.Nil(t, sessionCookie(res))
}

func TestCallback_TokenPairInstallsSession(t *testing.T) {
	h, auth, _, _ := newAuthTestHandler()

	jwtToken, err := auth.GenerateJWT(&model.User{ID: "u-1", Email: "gilee05@gsenc.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet,
		"/auth/callback?access_token="+jwtToken+"&refresh_token=r", nil)
	rec := httptest.NewRecorder()

	h.Callback(rec, req)

	res := rec.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
	cookie := sessionCookie(res)
	require.NotNil(t, cookie)
	assert.Equal(t, jwtToken, cookie.Value)
}

func TestCallback_AccessTokenWithoutRefreshIgnored(t *testing.T) {
	h, auth, _, _ := newAuthTestHandler()

	jwtToken, err := auth.GenerateJWT(&model.User{ID: "u-1", Email: "a@gsenc.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?access_token="+jwtToken, nil)
	rec := httptest.NewRecorder()

	h.Callback(rec, req)

	// Falls through to the session query; there is no session.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCallback_ForgedTokenPairRejected(t *testing.T) {
	h, _, _, _ := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodGet,
		"/auth/callback?access_token=forged&refresh_token=r", nil)
	rec := httptest.NewRecorder()

	h.Callback(rec, req)

	res := rec.Result()
	assert.Equal(t, "/?alert=access_denied", res.Header.Get("Location"))
	assert.Nil(t, sessionCookie(res))
}

func TestCallback_NoParamsActsAsSessionQuery(t *testing.T) {
	h, _, _, _ := newAuthTestHandler()

	rec := httptest.NewRecorder()
	h.Callback(rec, httptest.NewRequest(http.MethodGet, "/auth/callback", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	user := &model.User{ID: "u-1", Email: "gilee05@gsenc.com"}
	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), user))
	rec = httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gilee05@gsenc.com")
}

func TestSendMagicLink_AcceptsValidEmail(t *testing.T) {
	h, _, users, _ := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/auth/magic-link",
		strings.NewReader(`{"email":"gilee05@gsenc.com"}`))
	rec := httptest.NewRecorder()

	h.SendMagicLink(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	_, err := users.ByEmail("gilee05@gsenc.com")
	assert.NoError(t, err)
}

func TestSendMagicLink_RejectsBadInput(t *testing.T) {
	h, _, _, _ := newAuthTestHandler()

	rec := httptest.NewRecorder()
	h.SendMagicLink(rec, httptest.NewRequest(http.MethodPost, "/auth/magic-link", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.SendMagicLink(rec, httptest.NewRequest(http.MethodPost, "/auth/magic-link", strings.NewReader(`{"email":"nope"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyMagicLink_PathToken(t *testing.T) {
	h, _, users, tokens := newAuthTestHandler()
	_, raw := seedUserWithToken(t, users, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/magic-link/{token}", h.VerifyMagicLink)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/magic-link/"+raw, nil))

	res := rec.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
	assert.NotNil(t, sessionCookie(res))
}

func TestLogout_ClearsCookie(t *testing.T) {
	h, _, _, _ := newAuthTestHandler()

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec.Result())
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
