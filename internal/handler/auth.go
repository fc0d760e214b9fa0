package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teamjokbo/jokbo/internal/ctxkeys"
	"github.com/teamjokbo/jokbo/internal/model"
	"github.com/teamjokbo/jokbo/internal/repository"
	"github.com/teamjokbo/jokbo/internal/service"
	"github.com/teamjokbo/jokbo/internal/validation"
)

// alertMessages maps magic-link callback error codes to user-readable
// explanations. Unknown codes fall back to a generic message.
var alertMessages = map[string]string{
	"access_denied": "로그인이 거부되었습니다. 링크가 취소되었거나 권한이 없습니다.",
	"otp_expired":   "로그인 링크가 만료되었습니다. 새 링크를 요청해 주세요.",
}

const alertGeneric = "로그인에 실패했습니다. 잠시 후 다시 시도해 주세요."

// AlertMessage returns the user-facing explanation for a callback error code.
func AlertMessage(code string) string {
	if msg, ok := alertMessages[code]; ok {
		return msg
	}
	return alertGeneric
}

type authHandler struct {
	authService    *service.AuthService
	userRepository repository.UserRepository
}

func NewAuthHandler(authService *service.AuthService, userRepository repository.UserRepository) *authHandler {
	return &authHandler{
		authService:    authService,
		userRepository: userRepository,
	}
}

// SendMagicLink issues a one-time sign-in link to the given email. The
// response is always 202 so the endpoint does not leak which addresses have
// accounts.
func (h *authHandler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	err = validation.ValidateEmail(email)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.authService.SendMagicLink(r.Context(), email)
	if err != nil {
		slog.Warn("magic link send failed", "error", err, "email", email)
		Error(w, http.StatusInternalServerError, "failed to send sign-in link")
		return
	}

	JSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// VerifyMagicLink redeems the path-style token from the email link.
func (h *authHandler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	h.redeemToken(w, r, token)
}

// Callback reconciles the multi-channel sign-in callback. The URL may carry
// an error code, an exchange code, or a raw token pair; they are attempted
// in that fixed order, and the processed parameters never survive the
// redirect, so a reload cannot reprocess them.
func (h *authHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if code := q.Get("error"); code != "" {
		slog.Warn("auth callback carried an error", "code", code)
		h.redirectAlert(w, r, code)
		return
	}

	if code := q.Get("code"); code != "" {
		h.redeemToken(w, r, code)
		return
	}

	if access := q.Get("access_token"); access != "" && q.Get("refresh_token") != "" {
		h.installSession(w, r, access)
		return
	}

	// Nothing to reconcile; behave like a session query.
	h.Session(w, r)
}

// redeemToken exchanges a one-time token for a session cookie and redirects
// home. The full-page redirect guarantees dependent loads pick up the new
// identity.
func (h *authHandler) redeemToken(w http.ResponseWriter, r *http.Request, token string) {
	user, err := h.authService.VerifyMagicLink(token)
	if err != nil {
		slog.Warn("magic link verification failed", "error", err)
		h.redirectAlert(w, r, "otp_expired")
		return
	}

	jwtToken, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate session token", "error", err, "user_id", user.ID)
		h.redirectAlert(w, r, "server_error")
		return
	}

	h.authService.SetSessionCookie(w, jwtToken, time.Now().Add(h.authService.JWTExpiry()))

	slog.Info("user signed in", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// installSession accepts a raw token pair delivered in the callback URL and
// installs the access token directly as the session, after verifying it.
func (h *authHandler) installSession(w http.ResponseWriter, r *http.Request, accessToken string) {
	claims, err := h.authService.VerifyJWT(accessToken)
	if err != nil {
		slog.Warn("callback carried an invalid access token", "error", err)
		h.redirectAlert(w, r, "access_denied")
		return
	}

	exp, err := claims.GetExpirationTime()
	expiry := time.Now().Add(h.authService.JWTExpiry())
	if err == nil && exp != nil {
		expiry = exp.Time
	}

	h.authService.SetSessionCookie(w, accessToken, expiry)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *authHandler) redirectAlert(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, "/?alert="+url.QueryEscape(code), http.StatusSeeOther)
}

// Session reports the current authenticated identity, or 401. It is cheap
// and side-effect free; unauthenticated clients poll it as a fallback to
// the push channel.
func (h *authHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		Error(w, http.StatusUnauthorized, "no session")
		return
	}

	JSON(w, http.StatusOK, sessionResponse(user))
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	JSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func sessionResponse(user *model.User) map[string]string {
	return map[string]string{"email": user.Email}
}
