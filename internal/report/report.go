package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

// Write renders rec as an HTML report to w.
func Write(ctx context.Context, w io.Writer, rec match.MatchRecord) error {
	if err := Page(NewPageData(rec, time.Now())).Render(ctx, w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFile renders rec into the file at path, replacing it.
func WriteFile(ctx context.Context, path string, rec match.MatchRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := Write(ctx, f, rec); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", path, err)
	}
	slog.Info("report written", "path", path, "key", rec.Key(), "players", len(rec.Records))
	return nil
}
