package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/core/ports"
)

// AuthService implements registration, login and profile management.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates an active user account and signs it in. Phone and email
// uniqueness is left to the repository so concurrent registrations resolve
// in the store.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        normalizeEmail(in.Email),
		Phone:        in.Phone,
		PasswordHash: digest,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return s.signIn(created)
}

// Login checks the account status before the password, so a passive account
// is refused even with the right password.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserStatusPassive {
		return nil, domain.ErrUserPassive
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidPassword
	}

	return s.signIn(user)
}

// UpdateProfile applies a partial update to the caller's own account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) error {
	if update.Empty() {
		return nil
	}
	if update.Email != nil {
		e := normalizeEmail(*update.Email)
		update.Email = &e
	}
	if err := s.repo.Update(ctx, userID, update); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Msg("profile updated")
	return nil
}

// GetUser returns the public snippet other services embed.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.UserSnippet, error) {
	if id <= 0 {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Snippet(), nil
}

func (s *AuthService) signIn(user *domain.User) (*ports.AuthResult, error) {
	tok, err := s.tokens.Issue(user.Principal(), s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.AuthResult{
		UserID:  user.ID,
		Email:   user.Email,
		Phone:   user.Phone,
		Name:    user.Name,
		Surname: user.Surname,
		Token:   tok,
	}, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
