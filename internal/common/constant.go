package common

import "time"

// SessionCookieName is the default name of the cookie carrying the session token.
const SessionCookieName = "authToken"

// DefaultTokenTTL is the lifetime of an issued session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// RememberMeMaxAge is the cookie lifetime requested by "remember me".
const RememberMeMaxAge = 30 * 24 * time.Hour

// MinPasswordLength is the shortest password accepted at login and registration.
const MinPasswordLength = 6
