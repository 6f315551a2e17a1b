package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

// DocumentExt is the file extension of stored match documents.
const DocumentExt = ".json"

// FileStore keeps one JSON document per match in a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key match.Key) string {
	return filepath.Join(s.dir, string(key)+DocumentExt)
}

func (s *FileStore) Save(ctx context.Context, rec match.MatchRecord) (match.Key, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := rec.Key()
	if !key.Valid() {
		return "", fmt.Errorf("save match: invalid key %q", key)
	}
	b, err := encodeRecord(rec)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &IOError{Op: "create storage dir", Path: s.dir, Err: err}
	}
	if err := writeFileAtomic(s.dir, s.path(key), b); err != nil {
		return "", err
	}
	logSaved("json", key, len(rec.Records))
	return key, nil
}

func (s *FileStore) List(ctx context.Context) ([]match.Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &IOError{Op: "list storage dir", Path: s.dir, Err: err}
	}
	keys := make([]match.Key, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := KeyFromFileName(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *FileStore) Load(ctx context.Context, key match.Key) (match.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return match.MatchRecord{}, err
	}
	if !key.Valid() {
		return match.MatchRecord{}, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	path := s.path(key)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return match.MatchRecord{}, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return match.MatchRecord{}, &IOError{Op: "read match", Path: path, Err: err}
	}
	rec, err := decodeRecord(b)
	if err != nil {
		return match.MatchRecord{}, fmt.Errorf("load %q: %w", key, err)
	}
	return rec, nil
}

func (s *FileStore) Close() error {
	return nil
}

// KeyFromFileName maps a directory entry back to its key. Hidden and temp files are skipped.
func KeyFromFileName(name string) (match.Key, bool) {
	if !strings.HasSuffix(name, DocumentExt) {
		return "", false
	}
	key := match.Key(strings.TrimSuffix(name, DocumentExt))
	if !key.Valid() {
		return "", false
	}
	return key, true
}

// writeFileAtomic writes through a temp file in dir and renames it over path.
func writeFileAtomic(dir, path string, b []byte) error {
	tmp, err := os.CreateTemp(dir, ".match-*.tmp")
	if err != nil {
		return &IOError{Op: "create temp file", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		cleanup()
		return &IOError{Op: "write match", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return &IOError{Op: "sync match", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &IOError{Op: "close match", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &IOError{Op: "rename match", Path: path, Err: err}
	}
	return nil
}
