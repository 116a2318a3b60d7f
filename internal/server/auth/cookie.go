package auth

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/talksy/internal/common"
)

// CookieAttributes describes the session cookie independently of its value.
type CookieAttributes struct {
	Name     string
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
	Path     string
	// MaxAge is zero when the cookie should end with the browser session.
	MaxAge time.Duration
}

// MaxAgeMillis returns MaxAge in milliseconds, 0 meaning absent.
func (a CookieAttributes) MaxAgeMillis() int64 {
	return a.MaxAge.Milliseconds()
}

// CookiePolicy decides how the session cookie is written and cleared.
type CookiePolicy struct {
	Name   string
	Secure bool
}

// NewCookiePolicy returns a policy for the named cookie. The Secure attribute
// is set only in production.
func NewCookiePolicy(name string, production bool) CookiePolicy {
	if name == "" {
		name = common.SessionCookieName
	}
	return CookiePolicy{Name: name, Secure: production}
}

func (p CookiePolicy) name() string {
	if p.Name == "" {
		return common.SessionCookieName
	}
	return p.Name
}

// Attributes returns the cookie attributes for a login with or without
// "remember me".
func (p CookiePolicy) Attributes(rememberMe bool) CookieAttributes {
	a := CookieAttributes{
		Name:     p.name(),
		HTTPOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	}
	if rememberMe {
		a.MaxAge = common.RememberMeMaxAge
	}
	return a
}

// SessionCookie builds the cookie carrying token.
func (p CookiePolicy) SessionCookie(token string, rememberMe bool) *http.Cookie {
	a := p.Attributes(rememberMe)
	return &http.Cookie{
		Name:     a.Name,
		Value:    token,
		Path:     a.Path,
		HttpOnly: a.HTTPOnly,
		Secure:   a.Secure,
		SameSite: a.SameSite,
		MaxAge:   int(a.MaxAge / time.Second),
	}
}

// ClearedCookie builds a cookie that makes the client drop the session.
func (p CookiePolicy) ClearedCookie() *http.Cookie {
	a := p.Attributes(false)
	return &http.Cookie{
		Name:     a.Name,
		Value:    "",
		Path:     a.Path,
		HttpOnly: a.HTTPOnly,
		Secure:   a.Secure,
		SameSite: a.SameSite,
		Expires:  time.Unix(0, 0).UTC(),
	}
}
