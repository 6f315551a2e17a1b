package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

// MemoryStore keeps encoded documents in memory. Records go through the same
// codec as the file store, so loads never alias caller memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[match.Key][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[match.Key][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, rec match.MatchRecord) (match.Key, error) {
	key := rec.Key()
	b, err := encodeRecord(rec)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.docs[key] = b
	s.mu.Unlock()
	logSaved("memory", key, len(rec.Records))
	return key, nil
}

func (s *MemoryStore) List(_ context.Context) ([]match.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]match.Key, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *MemoryStore) Load(_ context.Context, key match.Key) (match.MatchRecord, error) {
	s.mu.RLock()
	b, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return match.MatchRecord{}, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	return decodeRecord(b)
}

// Put stores raw document bytes under key, bypassing the encoder.
func (s *MemoryStore) Put(key match.Key, b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append([]byte(nil), b...)
}

func (s *MemoryStore) Close() error {
	return nil
}
