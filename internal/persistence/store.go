package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AkatukiSora/volley-stats/internal/config"
	"github.com/AkatukiSora/volley-stats/internal/match"
)

var (
	// ErrNotFound is returned by Load for a key with no stored document.
	ErrNotFound = errors.New("match not found")
	// ErrCorruptData is returned by Load when a stored document cannot be decoded.
	ErrCorruptData = errors.New("corrupt match data")
)

// IOError wraps a storage failure (unwritable directory, unreadable file, database error).
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MatchStore persists match records keyed by match.KeyOf.
// Saving a record whose key already exists overwrites it.
type MatchStore interface {
	Save(ctx context.Context, rec match.MatchRecord) (match.Key, error)
	// List returns the stored keys in no particular order.
	List(ctx context.Context) ([]match.Key, error)
	// Load returns a fresh record; it fails with ErrNotFound or ErrCorruptData.
	Load(ctx context.Context, key match.Key) (match.MatchRecord, error)
	Close() error
}

// Open builds the store selected by the storage config.
func Open(cfg config.Storage) (MatchStore, error) {
	switch cfg.Backend {
	case config.BackendJSON, "":
		return NewFileStore(cfg.Dir), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("open store: unknown backend %q", cfg.Backend)
	}
}

func logSaved(backend string, key match.Key, players int) {
	slog.Info("match saved", "backend", backend, "key", key, "players", players)
}
