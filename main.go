package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AkatukiSora/volley-stats/internal/applog"
	"github.com/AkatukiSora/volley-stats/internal/application"
	"github.com/AkatukiSora/volley-stats/internal/auth"
	"github.com/AkatukiSora/volley-stats/internal/config"
	"github.com/AkatukiSora/volley-stats/internal/persistence"
	"github.com/AkatukiSora/volley-stats/internal/ui"
)

var (
	version   = "dev"
	commit    = "local"
	buildDate = "unknown"
)

// configPathEnv overrides config.DefaultPath.
const configPathEnv = "VOLLEY_STATS_CONFIG"

// loadStartupConfig resolves the config path from the environment and loads it.
// A missing file yields the defaults; an unreadable or invalid file is an error.
func loadStartupConfig(getenv func(string) string) (config.Config, error) {
	path := config.DefaultPath
	if p := getenv(configPathEnv); p != "" {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func main() {
	cfg, err := loadStartupConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if closer := applog.Init(cfg.Debug); closer != nil {
		defer closer.Close()
	}
	slog.Info("starting", "version", version, "commit", commit, "build_date", buildDate, "backend", cfg.Storage.Backend)

	gate, err := auth.NewGate(cfg.Auth)
	if err != nil {
		slog.Error("invalid auth config", "error", err)
		os.Exit(1)
	}

	store, err := persistence.Open(cfg.Storage)
	if err != nil {
		slog.Warn("storage unavailable, matches will not outlive this session", "backend", cfg.Storage.Backend, "error", err)
		store = persistence.NewMemoryStore()
	}

	opts := ui.Options{Auth: gate}
	if _, ok := store.(*persistence.FileStore); ok {
		opts.WatchDir = cfg.Storage.Dir
	}
	ui.Run(application.NewService(store), opts)
}
