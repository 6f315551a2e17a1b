package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

func init() {
	goose.AddMigrationContext(Up00002, Down00002)
}

type storedMatch struct {
	key       string
	date      string
	location  string
	opponent  string
	score     string
	updatedAt string
}

// Up00002 re-derives every match_key from the stored match info so rows written
// with older key rules become loadable under the current one. When two rows
// collapse onto one key the most recently updated row wins.
//
// Databases created by this version already hold derived keys, so this is a
// no-op for them. It stays in the chain for rows copied in from older builds
// and as the step to repeat when KeyOf changes.
func Up00002(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT match_key, match_date, location, opponent, final_score, updated_at
		FROM matches ORDER BY updated_at DESC, match_key`)
	if err != nil {
		return fmt.Errorf("scan matches: %w", err)
	}
	var all []storedMatch
	for rows.Next() {
		var m storedMatch
		if err := rows.Scan(&m.key, &m.date, &m.location, &m.opponent, &m.score, &m.updatedAt); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan match row: %w", err)
		}
		all = append(all, m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterate matches: %w", err)
	}
	_ = rows.Close()

	claimed := make(map[string]string, len(all))
	var drop []string
	renames := make(map[string]string)
	for _, m := range all {
		date, err := match.ParseDate(m.date)
		if err != nil {
			date = match.Date{}
		}
		want := match.KeyOf(match.MatchInfo{
			Date:       date,
			Location:   m.location,
			Opponent:   m.opponent,
			FinalScore: m.score,
		}).String()
		if _, taken := claimed[want]; taken {
			drop = append(drop, m.key)
			continue
		}
		claimed[want] = m.key
		if want != m.key {
			renames[m.key] = want
		}
	}

	for _, key := range drop {
		if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE match_key = ?`, key); err != nil {
			return fmt.Errorf("drop superseded match %q: %w", key, err)
		}
	}
	// Two passes so a rename never collides with a key that is itself about to move.
	for from := range renames {
		if _, err := tx.ExecContext(ctx, `UPDATE matches SET match_key = ? WHERE match_key = ?`, "\x00"+from, from); err != nil {
			return fmt.Errorf("stage match key %q: %w", from, err)
		}
	}
	for from, to := range renames {
		if _, err := tx.ExecContext(ctx, `UPDATE matches SET match_key = ? WHERE match_key = ?`, to, "\x00"+from); err != nil {
			return fmt.Errorf("rename match key %q: %w", from, err)
		}
	}
	return nil
}

func Down00002(context.Context, *sql.Tx) error {
	return nil
}
