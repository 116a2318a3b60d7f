package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/talksy/internal/common"
)

type userIDKey struct{}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user id stored by RequireSession.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// sessionToken reads the token from the session cookie, then from an
// Authorization: Bearer header.
func (h *AuthHandlers) sessionToken(r *http.Request) string {
	if c, err := r.Cookie(h.cookies.Attributes(false).Name); err == nil && c.Value != "" {
		return c.Value
	}
	const prefix = "Bearer "
	if authz := r.Header.Get("Authorization"); len(authz) > len(prefix) && strings.EqualFold(authz[:len(prefix)], prefix) {
		return strings.TrimSpace(authz[len(prefix):])
	}
	return ""
}

// RequireSession rejects requests without a valid session token with 401.
func (h *AuthHandlers) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.sessionToken(r)
		if token == "" {
			h.metrics.check(outcomeNoToken)
			writeErrors(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}

		if h.issuer == nil {
			h.metrics.check(outcomeError)
			writeErrors(w, http.StatusInternalServerError, msgTokenSetup)
			return
		}

		userID, err := h.issuer.Verify(token)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				h.metrics.check(outcomeExpiredToken)
				writeErrors(w, http.StatusUnauthorized, msgTokenExpired)
				return
			}
			h.metrics.check(outcomeInvalidToken)
			h.log.Debug(r.Context(), "session token rejected", "error", err)
			writeErrors(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		h.metrics.check(outcomeSuccess)
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
