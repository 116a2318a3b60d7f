// Package users implements the user store: account records keyed by a
// generated id and looked up by email.
package users

import (
	"context"

	"github.com/dmitrijs2005/talksy/internal/server/models"
)

// Repository is the user store used by the auth core.
//
// GetUserByEmail returns common.ErrorNotFound when no record matches. Create returns common.ErrUserAlreadyExists when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
