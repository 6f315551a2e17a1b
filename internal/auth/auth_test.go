package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/AkatukiSora/volley-stats/internal/config"
)

func testGate(t *testing.T) *Gate {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	g, err := NewGate(config.Auth{Enabled: true, Username: "coach", PasswordHash: string(hash)})
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	return g
}

func TestGateAcceptsConfiguredCredentials(t *testing.T) {
	t.Parallel()

	if err := testGate(t).Check("coach", "secret"); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestGateRejectsWrongCredentials(t *testing.T) {
	t.Parallel()

	g := testGate(t)
	cases := []struct{ user, pass string }{
		{"coach", "wrong"},
		{"player", "secret"},
		{"", ""},
	}
	for _, tc := range cases {
		if err := g.Check(tc.user, tc.pass); !errors.Is(err, ErrDenied) {
			t.Fatalf("check(%q, %q) = %v, want ErrDenied", tc.user, tc.pass, err)
		}
	}
}

func TestDisabledGateGrantsAccess(t *testing.T) {
	t.Parallel()

	g, err := NewGate(config.Auth{})
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	if g.Enabled() {
		t.Fatal("gate should be disabled")
	}
	if err := g.Check("anyone", ""); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestNewGateRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	if _, err := NewGate(config.Auth{Enabled: true, Username: "u", PasswordHash: "plaintext"}); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestHashPasswordVerifies(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("pw")); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
