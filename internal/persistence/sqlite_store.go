package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

// SQLiteStore keeps match documents in a single sqlite table keyed by match key.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &IOError{Op: "open sqlite", Path: dbPath, Err: err}
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return nil, &IOError{Op: "set sqlite pragmas", Path: dbPath, Err: err}
	}
	if _, err := migrateSchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, rec match.MatchRecord) (match.Key, error) {
	key := rec.Key()
	payload, err := encodeRecord(rec)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO matches(
			match_key, match_date, location, opponent, final_score, players, payload, updated_at
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_key) DO UPDATE SET
			match_date=excluded.match_date,
			location=excluded.location,
			opponent=excluded.opponent,
			final_score=excluded.final_score,
			players=excluded.players,
			payload=excluded.payload,
			updated_at=excluded.updated_at`,
			string(key),
			rec.Info.Date.String(),
			rec.Info.Location,
			rec.Info.Opponent,
			rec.Info.FinalScore,
			len(rec.Records),
			string(payload),
			now,
		)
		return err
	})
	if err != nil {
		return "", &IOError{Op: "upsert match", Path: s.path, Err: err}
	}
	logSaved("sqlite", key, len(rec.Records))
	return key, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]match.Key, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT match_key FROM matches ORDER BY match_key`)
	if err != nil {
		return nil, &IOError{Op: "list matches", Path: s.path, Err: err}
	}
	defer rows.Close()

	var keys []match.Key
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &IOError{Op: "scan match key", Path: s.path, Err: err}
		}
		keys = append(keys, match.Key(k))
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "list matches", Path: s.path, Err: err}
	}
	return keys, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key match.Key) (match.MatchRecord, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM matches WHERE match_key = ?`, string(key)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return match.MatchRecord{}, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return match.MatchRecord{}, &IOError{Op: "load match", Path: s.path, Err: err}
	}
	rec, err := decodeRecord([]byte(payload))
	if err != nil {
		return match.MatchRecord{}, fmt.Errorf("load %q: %w", key, err)
	}
	return rec, nil
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
