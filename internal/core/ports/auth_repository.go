package ports

import (
	"context"
	"time"

	"github.com/eventhub/platform/internal/core/domain"
)

// UserRepository persists credential records. Implementations must enforce
// phone uniqueness among non-admin accounts and email uniqueness atomically,
// returning domain.ErrPhoneInUse / domain.ErrEmailInUse on collision.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, update domain.ProfileUpdate) error
}

// PasswordHasher is the credential verifier used at registration and login.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer mints signed tokens for a principal.
type TokenIssuer interface {
	Issue(p domain.Principal, ttl time.Duration) (string, error)
}
