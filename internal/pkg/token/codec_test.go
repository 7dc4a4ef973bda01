package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventhub/platform/internal/core/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret")
	principals := []domain.Principal{
		{UserID: 1, Role: domain.RoleUser, Name: "Ada", Surname: "Lovelace"},
		{UserID: 42, Role: domain.RoleAdmin, Name: "Grace", Surname: "Hopper"},
		{UserID: 7, Role: domain.RoleUser},
	}

	for _, p := range principals {
		raw, err := c.Issue(p, 10*time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		got, err := c.Verify(raw)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if got != p {
			t.Fatalf("expected %+v, got %+v", p, got)
		}
	}
}

func TestCodec_Verify_FlippedSignatureBit(t *testing.T) {
	c := NewCodec("secret")
	raw, err := c.Issue(domain.Principal{UserID: 5, Role: domain.RoleUser}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	for i := range sig {
		for bit := 0; bit < 8; bit += 3 {
			tampered := append([]byte(nil), sig...)
			tampered[i] ^= 1 << bit
			forged := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(tampered)
			if _, err := c.Verify(forged); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("byte %d bit %d: expected ErrInvalidToken, got %v", i, bit, err)
			}
		}
	}
}

func TestCodec_Verify_Missing(t *testing.T) {
	c := NewCodec("secret")
	if _, err := c.Verify(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestCodec_NoSecret(t *testing.T) {
	c := NewCodec("")
	if _, err := c.Issue(domain.Principal{UserID: 1}, time.Minute); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("issue: expected ErrNoSecret, got %v", err)
	}
	if _, err := c.Verify("a.b.c"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("verify: expected ErrNoSecret, got %v", err)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	c := NewCodec("secret")
	raw, err := c.Issue(domain.Principal{UserID: 1, Role: domain.RoleUser}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := c.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	raw, err := NewCodec("one").Issue(domain.Principal{UserID: 1, Role: domain.RoleUser}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewCodec("two").Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	c := NewCodec("secret")
	for _, raw := range []string{"not-a-token", "a.b", "a.b.c"} {
		if _, err := c.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestCodec_Verify_EmptyPayload(t *testing.T) {
	c := NewCodec("secret")
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := c.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_RejectsOtherAlgorithms(t *testing.T) {
	c := NewCodec("secret")
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 1, Role: domain.RoleAdmin}).
		SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := c.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: domain.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := c.Verify(none); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("alg none: expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_ErrorKinds(t *testing.T) {
	if domain.KindOf(ErrMissingToken) != domain.KindUnauthorized {
		t.Fatalf("missing token should be unauthorized")
	}
	if domain.KindOf(ErrNoSecret) != domain.KindInternal {
		t.Fatalf("missing secret should be internal")
	}
	wrapped := NewCodec("secret")
	_, err := wrapped.Verify("garbage")
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Fatalf("invalid token should be unauthorized, got %v", domain.KindOf(err))
	}
}

func TestPeek(t *testing.T) {
	want := domain.Principal{UserID: 12, Role: domain.RoleUser, Name: "Ada", Surname: "Lovelace"}
	raw, err := NewCodec("s3cret").Issue(want, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, exp, err := Peek(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Fatalf("unexpected expiry %v", exp)
	}

	if _, _, err := Peek("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, _, err := Peek(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}
