// Package services contains server-side business logic: credential
// verification for login and account registration.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/talksy/internal/common"
	"github.com/dmitrijs2005/talksy/internal/cryptox"
	"github.com/dmitrijs2005/talksy/internal/dbx"
	"github.com/dmitrijs2005/talksy/internal/logging"
	"github.com/dmitrijs2005/talksy/internal/server/models"
	"github.com/dmitrijs2005/talksy/internal/server/repositories/repomanager"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 40
)

// ValidationError lists every problem found in a registration request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// UserService creates accounts.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	hashCost    int
}

// NewUserService constructs a UserService on top of db.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *UserService {
	if log == nil {
		log = logging.Nop()
	}
	return &UserService{db: db, repomanager: m, log: log, hashCost: cryptox.DefaultCost}
}

// ValidateRegistration returns a *ValidationError naming every invalid field,
// or nil.
func ValidateRegistration(username, email, password string) error {
	var problems []string

	if n := utf8.RuneCountInString(strings.TrimSpace(username)); n < minUsernameLength || n > maxUsernameLength {
		problems = append(problems, fmt.Sprintf("Username must be between %d and %d characters", minUsernameLength, maxUsernameLength))
	}
	if !validEmail(email) {
		problems = append(problems, "Email is invalid")
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLength {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters", common.MinPasswordLength))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register validates the request, hashes the password and stores the user.
// A taken email yields common.ErrUserAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := ValidateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPasswordWithCost(password, s.hashCost)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return nil, &ValidationError{Problems: []string{"Password is too long"}}
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrUserAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error checking email: %w", err)
		}

		created, err = repo.Create(ctx, &models.User{
			Email:        email,
			Username:     strings.TrimSpace(username),
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, common.ErrUserAlreadyExists) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, common.ErrUserAlreadyExists) {
			s.log.Error(ctx, "registration failed", "error", err)
		}
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}
