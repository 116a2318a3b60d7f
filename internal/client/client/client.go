package client

import "context"

// User is an account as returned by registration.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the result of a successful login.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type Client interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*Session, error)
	Logout(ctx context.Context) error
	// Check returns the id of the user owning the current session.
	Check(ctx context.Context) (string, error)
}
