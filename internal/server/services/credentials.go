package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talksy/internal/common"
	"github.com/dmitrijs2005/talksy/internal/cryptox"
	"github.com/dmitrijs2005/talksy/internal/logging"
	"github.com/dmitrijs2005/talksy/internal/server/models"
	"github.com/dmitrijs2005/talksy/internal/server/repositories/users"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/dmitrijs2005/talksy/internal/server/services")

// CredentialVerifier checks an email/password pair against the user store.
type CredentialVerifier struct {
	users users.Repository
	log   logging.Logger
}

func NewCredentialVerifier(repo users.Repository, log logging.Logger) *CredentialVerifier {
	if log == nil {
		log = logging.Nop()
	}
	return &CredentialVerifier{users: repo, log: log}
}

// Verify returns the user whose email and password match.
//
// A missing account yields common.ErrUserNotFound and a wrong password
// common.ErrInvalidCredentials. Store failures are wrapped in
// common.ErrorInternal.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "CredentialVerifier.Verify", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	user, err := v.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			span.SetAttributes(attribute.String("auth.outcome", "user_not_found"))
			return nil, common.ErrUserNotFound
		}
		span.SetStatus(codes.Error, "user lookup failed")
		v.log.Error(ctx, "user lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := cryptox.ComparePassword(user.PasswordHash, password)
	if err != nil {
		span.SetStatus(codes.Error, "stored hash unusable")
		v.log.Error(ctx, "stored password hash unusable", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		span.SetAttributes(attribute.String("auth.outcome", "bad_password"))
		return nil, common.ErrInvalidCredentials
	}

	span.SetAttributes(attribute.String("auth.outcome", "ok"), attribute.String("user.id", user.ID))
	return user, nil
}
