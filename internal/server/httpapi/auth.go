package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/talksy/internal/common"
	"github.com/dmitrijs2005/talksy/internal/logging"
	"github.com/dmitrijs2005/talksy/internal/server/auth"
	"github.com/dmitrijs2005/talksy/internal/server/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/dmitrijs2005/talksy/internal/server/httpapi")

// Client-facing messages.
const (
	msgMissingCredentials = "Missing credentials"
	msgPasswordTooShort   = "Password must be at least 6 characters"
	msgUserNotFound       = "User not found"
	msgIncorrect          = "Email or password incorrect"
	msgTokenSetup         = "Error setting up auth token"
	msgInternal           = "Internal server error"
	msgLogout             = "Logout successfully"
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidToken       = "Invalid token"
	msgTokenExpired       = "Token expired"
)

// Verifier checks submitted credentials.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// AuthDeps are the collaborators of AuthHandlers.
type AuthDeps struct {
	Verifier Verifier
	Issuer   TokenIssuer
	Cookies  auth.CookiePolicy
	Logger   logging.Logger
	Metrics  *Metrics

	// ConcealUserExistence answers an unknown email like a wrong password.
	ConcealUserExistence bool
}

// AuthHandlers serves /auth/login, /auth/logout and /auth/check.
type AuthHandlers struct {
	verifier Verifier
	issuer   TokenIssuer
	cookies  auth.CookiePolicy
	log      logging.Logger
	metrics  *Metrics
	conceal  bool
}

func NewAuthHandlers(d AuthDeps) *AuthHandlers {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &AuthHandlers{
		verifier: d.Verifier,
		issuer:   d.Issuer,
		cookies:  d.Cookies,
		log:      log.With("component", "auth"),
		metrics:  d.Metrics,
		conceal:  d.ConcealUserExistence,
	}
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	Token    string `json:"token"`
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Email == "" || req.Password == "" {
		h.metrics.login(outcomeMissing)
		writeErrors(w, http.StatusUnauthorized, msgMissingCredentials)
		return
	}

	if utf8.RuneCountInString(req.Password) < common.MinPasswordLength {
		h.metrics.login(outcomeShortPassword)
		writeErrors(w, http.StatusUnauthorized, msgPasswordTooShort)
		return
	}

	user, err := h.verifier.Verify(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrUserNotFound):
		h.metrics.login(outcomeUserNotFound)
		if h.conceal {
			writeErrors(w, http.StatusUnauthorized, msgIncorrect)
			return
		}
		writeErrors(w, http.StatusNotFound, msgUserNotFound)
		return
	case errors.Is(err, common.ErrInvalidCredentials):
		h.metrics.login(outcomeBadPassword)
		writeErrors(w, http.StatusUnauthorized, msgIncorrect)
		return
	default:
		h.metrics.login(outcomeError)
		h.log.Error(ctx, "credential verification failed", "error", err)
		writeErrors(w, http.StatusInternalServerError, msgInternal)
		return
	}

	token, err := h.issue(ctx, user.ID)
	if err != nil {
		h.metrics.login(outcomeError)
		h.log.Error(ctx, "token issuance failed", "user_id", user.ID, "error", err)
		writeErrors(w, http.StatusInternalServerError, msgTokenSetup)
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(token, req.RememberMe))
	h.metrics.login(outcomeSuccess)
	h.log.Info(ctx, "login succeeded", "user_id", user.ID, "remember_me", req.RememberMe)

	writeJSON(w, http.StatusOK, loginResponse{Username: user.Username, ID: user.ID, Token: token})
}

func (h *AuthHandlers) issue(ctx context.Context, userID string) (string, error) {
	if h.issuer == nil {
		return "", common.ErrConfiguration
	}
	_, span := tracer.Start(ctx, "Issuer.Issue")
	defer span.End()

	token, _, err := h.issuer.Issue(userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return token, nil
}

// Logout handles GET /auth/logout. It always succeeds.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookies.ClearedCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": msgLogout})
}

// Check handles GET /auth/check behind RequireSession.
func (h *AuthHandlers) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrors(w, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user": userID})
}
