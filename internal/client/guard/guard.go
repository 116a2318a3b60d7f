// Package guard decides what a protected view shows for a given auth state.
package guard

import "github.com/dmitrijs2005/talksy/internal/client/authstate"

// Kind is the outcome of a guard decision.
type Kind int

const (
	// Loading means the session check has not finished; show a placeholder.
	Loading Kind = iota
	// Render means the protected content may be shown.
	Render
	// Redirect means the user must be sent to Location.
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of Decide. Location and Replace are set only for
// Redirect; Replace means the current location is replaced in history.
type Decision struct {
	Kind     Kind
	Location string
	Replace  bool
}

// Decide never redirects or renders while the state is still loading.
func Decide(s authstate.State, loginPath string) Decision {
	switch {
	case s.IsLoading:
		return Decision{Kind: Loading}
	case s.IsAuthenticated:
		return Decision{Kind: Render}
	default:
		return Decision{Kind: Redirect, Location: loginPath, Replace: true}
	}
}

// DecideAnonymous guards views meant for signed-out users, such as the
// login form: an authenticated user is sent to homePath instead. Like
// Decide it never redirects or renders while loading.
func DecideAnonymous(s authstate.State, homePath string) Decision {
	switch {
	case s.IsLoading:
		return Decision{Kind: Loading}
	case s.IsAuthenticated:
		return Decision{Kind: Redirect, Location: homePath, Replace: true}
	default:
		return Decision{Kind: Render}
	}
}
