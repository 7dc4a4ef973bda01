package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eventhub/platform/internal/core/domain"
)

func TestMapConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"phone", &pgconn.PgError{Code: uniqueViolation, ConstraintName: phoneIndex}, domain.ErrPhoneInUse},
		{"email wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolation, ConstraintName: emailIndex}), domain.ErrEmailInUse},
		{"other unique", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_pkey"}, nil},
		{"check violation", &pgconn.PgError{Code: "23514", ConstraintName: phoneIndex}, nil},
		{"plain error", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapConstraint(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
