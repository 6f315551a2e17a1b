package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"

	_ "github.com/AkatukiSora/volley-stats/internal/persistence/migrations"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var gooseSetup = sync.OnceValue(func() error {
	goose.SetBaseFS(migrationFS)
	goose.SetLogger(goose.NopLogger())
	return goose.SetDialect("sqlite3")
})

// migrateSchema brings the matches schema up to date and reports the resulting version.
func migrateSchema(ctx context.Context, db *sql.DB) (int64, error) {
	if err := gooseSetup(); err != nil {
		return 0, fmt.Errorf("setup goose: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return 0, fmt.Errorf("migrate schema: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	slog.Debug("schema migrated", "version", version)
	return version, nil
}
