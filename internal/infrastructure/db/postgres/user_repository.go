package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/platform/internal/core/domain"
)

const (
	uniqueViolation = "23505"

	emailIndex = "users_email_key"
	phoneIndex = "users_phone_number_key"
)

const userColumns = `id, name, surname, email, phone_number, password_hash, role, status, created_at, updated_at`

// UserRepository implements ports.UserRepository. Uniqueness comes from the
// partial phone index and the email index, so concurrent registrations with
// the same phone resolve to exactly one row.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO users (name, surname, email, phone_number, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, q,
		user.Name, user.Surname, user.Email, user.Phone, user.PasswordHash,
		string(user.Role), string(user.Status), user.CreatedAt, user.UpdatedAt,
	)
	created, err := scanUser(row)
	if err != nil {
		if mapped := mapConstraint(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, upd domain.ProfileUpdate) error {
	const q = `
		UPDATE users SET
			name         = COALESCE($2, name),
			surname      = COALESCE($3, surname),
			phone_number = COALESCE($4, phone_number),
			email        = COALESCE($5, email),
			updated_at   = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, id, upd.Name, upd.Surname, upd.Phone, upd.Email)
	if err != nil {
		if mapped := mapConstraint(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u            domain.User
		role, status string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Phone, &u.PasswordHash,
		&role, &status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	return &u, nil
}

// mapConstraint turns unique violations into domain errors, or returns nil.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case phoneIndex:
		return domain.ErrPhoneInUse
	case emailIndex:
		return domain.ErrEmailInUse
	default:
		return nil
	}
}

// Ping adapts the pool to a readiness check.
func Ping(pool *pgxpool.Pool) func(ctx context.Context) error {
	return pool.Ping
}
