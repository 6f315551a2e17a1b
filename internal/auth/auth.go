// Package auth implements the single static-credential login gate.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/AkatukiSora/volley-stats/internal/config"
)

// ErrDenied is returned for a wrong username or password.
var ErrDenied = errors.New("invalid username or password")

// Gate checks credentials against the configured username and bcrypt hash.
// A disabled gate grants access unconditionally.
type Gate struct {
	enabled  bool
	username string
	hash     []byte
}

func NewGate(cfg config.Auth) (*Gate, error) {
	if !cfg.Enabled {
		return &Gate{}, nil
	}
	hash := []byte(cfg.PasswordHash)
	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("parse password hash: %w", err)
	}
	return &Gate{enabled: true, username: cfg.Username, hash: hash}, nil
}

// Enabled reports whether a login is required.
func (g *Gate) Enabled() bool {
	return g != nil && g.enabled
}

// Check returns nil when access is granted.
func (g *Gate) Check(username, password string) error {
	if !g.Enabled() {
		return nil
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	// bcrypt runs even when the username already failed.
	passErr := bcrypt.CompareHashAndPassword(g.hash, []byte(password))
	if !userOK || passErr != nil {
		slog.Warn("login rejected", "username", username)
		return ErrDenied
	}
	slog.Info("login accepted", "username", username)
	return nil
}

// HashPassword produces a bcrypt hash for the config file.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
