package ports

import (
	"context"

	"github.com/eventhub/platform/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Surname  string
	Phone    string
	Password string
	Email    string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by both login and registration.
type AuthResult struct {
	UserID  int64
	Email   string
	Phone   string
	Name    string
	Surname string
	Token   string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) error
	GetUser(ctx context.Context, id int64) (*domain.UserSnippet, error)
}
