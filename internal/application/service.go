package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/AkatukiSora/volley-stats/internal/importer"
	"github.com/AkatukiSora/volley-stats/internal/match"
	"github.com/AkatukiSora/volley-stats/internal/persistence"
	"github.com/AkatukiSora/volley-stats/internal/report"
	"github.com/AkatukiSora/volley-stats/internal/stats"
)

// AppService is the interface that the UI layer depends on for editing,
// persisting and analysing the active match. application.Service satisfies it.
type AppService interface {
	Current() Snapshot
	NewDraft()
	SetInfo(info match.MatchInfo)
	SubmitRows(rows []match.RawStat) (int, error)
	AppendRows(rows []match.RawStat) (int, error)
	ImportExcel(path string) (int, error)
	Save(ctx context.Context) (match.Key, error)
	Load(ctx context.Context, key match.Key) error
	ListStored(ctx context.Context) ([]match.Key, error)
	ScoreBreakdown() []stats.BreakdownEntry
	ErrorBreakdown() []stats.BreakdownEntry
	Summaries() (players []stats.PlayerSummary, team stats.PlayerSummary)
	WriteReport(ctx context.Context, path string) error
	Close() error
}

// Phase is where the active record is in its edit/save lifecycle.
type Phase int

const (
	// PhaseDraft holds unsaved edits.
	PhaseDraft Phase = iota
	// PhaseSaved matches the copy written by the last Save.
	PhaseSaved
	// PhaseLoaded matches the stored copy it was loaded from.
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseDraft:
		return "draft"
	case PhaseSaved:
		return "saved"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the active record and its lifecycle state.
// Key is set only while the record matches a stored copy.
type Snapshot struct {
	Record match.MatchRecord
	Phase  Phase
	Key    match.Key
}

// Service owns the single active match record.
type Service struct {
	mu      sync.RWMutex
	store   persistence.MatchStore
	current match.MatchRecord
	phase   Phase
	key     match.Key
}

func NewService(store persistence.MatchStore) *Service {
	return &Service{
		store:   store,
		current: match.MatchRecord{Records: []match.StatRecord{}},
	}
}

func (s *Service) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Record: s.current.Clone(), Phase: s.phase, Key: s.key}
}

// NewDraft discards the active record and starts an empty one.
func (s *Service) NewDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = match.MatchRecord{Records: []match.StatRecord{}}
	s.markDraftLocked()
}

// SetInfo replaces the match metadata. Unchanged metadata keeps the phase.
func (s *Service) SetInfo(info match.MatchInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Info == info {
		return
	}
	s.current.Info = info
	s.markDraftLocked()
}

// SubmitRows validates every row and replaces the player records with the named ones.
// On a validation error nothing changes.
func (s *Service) SubmitRows(rows []match.RawStat) (int, error) {
	records, err := normalizeRows(rows)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Records = records
	s.markDraftLocked()
	slog.Debug("rows submitted", "rows", len(rows), "kept", len(records))
	return len(records), nil
}

// AppendRows validates every row and appends the named ones after the existing records.
func (s *Service) AppendRows(rows []match.RawStat) (int, error) {
	records, err := normalizeRows(rows)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Records = append(s.current.Records, records...)
	s.markDraftLocked()
	return len(records), nil
}

// ImportExcel appends the player rows of the first sheet of an xlsx workbook.
func (s *Service) ImportExcel(path string) (int, error) {
	res, err := importer.ReadExcel(path)
	if err != nil {
		return 0, err
	}
	n, err := s.AppendRows(res.Rows)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}
	slog.Info("excel imported", "path", path, "players", n, "ignoredColumns", res.Ignored)
	return n, nil
}

func normalizeRows(rows []match.RawStat) ([]match.StatRecord, error) {
	records, err := match.NormalizeAll(rows)
	if err != nil {
		return nil, err
	}
	return match.FilterIncomplete(records), nil
}

// Save writes the active record under its derived key, overwriting any match with the same key.
// The store write runs without holding the lock; edits made meanwhile keep the record a draft.
func (s *Service) Save(ctx context.Context) (match.Key, error) {
	s.mu.RLock()
	snap := s.current.Clone()
	s.mu.RUnlock()

	key, err := s.store.Save(ctx, snap)
	if err != nil {
		slog.Error("save failed", "key", snap.Key(), "error", err)
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current.Equal(snap) {
		slog.Debug("record edited during save", "key", key)
		return key, nil
	}
	s.phase = PhaseSaved
	s.key = key
	return key, nil
}

// Load replaces the active record with the stored match. On failure the active record is kept.
// The snapshot key is the one derived from the loaded metadata.
func (s *Service) Load(ctx context.Context, key match.Key) error {
	rec, err := s.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			slog.Error("load failed", "key", key, "error", err)
		}
		return err
	}
	if rec.Records == nil {
		rec.Records = []match.StatRecord{}
	}
	derived := rec.Key()
	if derived != key {
		slog.Warn("stored key does not match metadata", "key", key, "derived", derived)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = rec
	s.phase = PhaseLoaded
	s.key = derived
	slog.Info("match loaded", "key", derived, "players", len(rec.Records))
	return nil
}

// ListStored returns the stored keys, most recent match date first and undated matches last.
func (s *Service) ListStored(ctx context.Context) ([]match.Key, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	SortKeysNewestFirst(keys)
	return keys, nil
}

func (s *Service) ScoreBreakdown() []stats.BreakdownEntry {
	return stats.ScoreBreakdown(s.records())
}

func (s *Service) ErrorBreakdown() []stats.BreakdownEntry {
	return stats.ErrorBreakdown(s.records())
}

func (s *Service) Summaries() ([]stats.PlayerSummary, stats.PlayerSummary) {
	records := s.records()
	return stats.Summarize(records), stats.SummarizeRecord(stats.Totals(records))
}

// WriteReport renders the active record as an HTML report at path.
func (s *Service) WriteReport(ctx context.Context, path string) error {
	return report.WriteFile(ctx, path, s.Current().Record)
}

func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *Service) records() []match.StatRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]match.StatRecord(nil), s.current.Records...)
}

func (s *Service) markDraftLocked() {
	s.phase = PhaseDraft
	s.key = ""
}

// SortKeysNewestFirst orders keys by their YYYYMMDD prefix, newest first.
// Keys without a parsable date sort last; ties keep key order.
func SortKeysNewestFirst(keys []match.Key) {
	sort.SliceStable(keys, func(i, j int) bool {
		di, oki := keyDate(keys[i])
		dj, okj := keyDate(keys[j])
		if oki != okj {
			return oki
		}
		if di != dj {
			return di > dj
		}
		return keys[i] < keys[j]
	})
}

func keyDate(k match.Key) (string, bool) {
	prefix, _, _ := strings.Cut(string(k), "_")
	if len(prefix) != 8 {
		return "", false
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return prefix, true
}
