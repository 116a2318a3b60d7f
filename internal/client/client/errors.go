package client

import (
	"errors"
	"net/http"
	"strconv"
)

// UnexpectedErrorMessage is shown when no better message is available.
const UnexpectedErrorMessage = "An unexpected error occurred"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return "HTTP " + strconv.Itoa(e.Status)
}

// Is reports 401 and 403 responses as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// ErrorMessages returns the messages to show for err. Server messages are
// passed through; anything else, including an unreachable server, maps to
// UnexpectedErrorMessage.
func ErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
		return apiErr.Messages
	}
	return []string{UnexpectedErrorMessage}
}
