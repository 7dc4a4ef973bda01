package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{ErrUserNotFound, KindNotFound},
		{ErrPhoneInUse, KindBusiness},
		{ErrPrincipalMissing, KindUnauthorized},
		{ErrRoleNotAllowed, KindForbidden},
		{fmt.Errorf("create event: %w", ErrEventNotFound), KindNotFound},
		{InvalidParameter("title is required"), KindInvalidParameter},
		{Timeout("lookup"), KindTimeout},
		{errors.New("boom"), KindInternal},
		{nil, KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("%v: expected %v, got %v", tt.err, tt.want, got)
		}
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	// Same message, different kinds: identity must not collapse them.
	if errors.Is(ErrPrincipalMissing, ErrUserNotFound) {
		t.Fatalf("principal-missing must not match user-not-found")
	}
}

func TestEvent_OwnedBy(t *testing.T) {
	e := &Event{UserID: 3}
	if !e.OwnedBy(Principal{UserID: 3, Role: RoleUser}) {
		t.Fatalf("owner rejected")
	}
	if e.OwnedBy(Principal{UserID: 4, Role: RoleUser}) {
		t.Fatalf("stranger accepted")
	}
	if !e.OwnedBy(Principal{UserID: 4, Role: RoleAdmin}) {
		t.Fatalf("admin rejected")
	}
	if e.OwnedBy(Principal{UserID: 0, Role: RoleAdmin}) {
		t.Fatalf("anonymous admin claim accepted")
	}
}
