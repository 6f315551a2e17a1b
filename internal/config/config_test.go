package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(DataDirEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadOverridesAndFillsDefaults(t *testing.T) {
	t.Setenv(DataDirEnv, "")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := strings.Join([]string{
		"debug: true",
		"storage:",
		"  backend: sqlite",
		"auth:",
		"  enabled: true",
		"  username: coach",
		"  password_hash: $2a$10$abcdefghijklmnopqrstuu",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Debug || cfg.Storage.Backend != BackendSQLite || cfg.Auth.Username != "coach" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Storage.Dir != "match_data" {
		t.Fatalf("storage dir = %q, want default", cfg.Storage.Dir)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv(DataDirEnv, "")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: csv\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadRejectsAuthWithoutHash(t *testing.T) {
	t.Setenv(DataDirEnv, "")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("auth:\n  enabled: true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for auth without password hash")
	}
}

func TestDataDirEnvRelocatesStorage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DataDirEnv, dir)

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Dir != filepath.Join(dir, "match_data") {
		t.Fatalf("storage dir = %q", cfg.Storage.Dir)
	}
	if cfg.Storage.SQLitePath != filepath.Join(dir, "volley-stats.db") {
		t.Fatalf("sqlite path = %q", cfg.Storage.SQLitePath)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(DataDirEnv, "")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	want := Default()
	want.Debug = true
	want.Storage.Dir = "elsewhere"
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
