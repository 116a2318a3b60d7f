package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/talksy/internal/common"
	"github.com/dmitrijs2005/talksy/internal/logging"
	"github.com/dmitrijs2005/talksy/internal/server/models"
	"github.com/dmitrijs2005/talksy/internal/server/services"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgUserExists    = "User already exists"
	msgRegisterError = "Error creating user"
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
}

// UserHandlers serves POST /users.
type UserHandlers struct {
	registrar Registrar
	log       logging.Logger
}

func NewUserHandlers(r Registrar, log logging.Logger) *UserHandlers {
	if log == nil {
		log = logging.Nop()
	}
	return &UserHandlers{registrar: r, log: log.With("component", "users")}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register handles POST /users. It does not start a session.
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.registrar.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			writeErrors(w, http.StatusBadRequest, ve.Problems...)
		case errors.Is(err, common.ErrUserAlreadyExists):
			writeErrors(w, http.StatusConflict, msgUserExists)
		default:
			h.log.Error(r.Context(), "registration failed", "error", err)
			writeErrors(w, http.StatusInternalServerError, msgRegisterError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}
