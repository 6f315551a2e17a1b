package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AkatukiSora/volley-stats/internal/config"
)

func envWith(path string) func(string) string {
	return func(key string) string {
		if key == configPathEnv {
			return path
		}
		return ""
	}
}

func TestLoadStartupConfigRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"auth without hash": "auth:\n  enabled: true\n  username: coach\n",
		"malformed yaml":    "storage: [json\n",
		"unknown backend":   "storage:\n  backend: redis\n",
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "volley-stats.yaml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			cfg, err := loadStartupConfig(envWith(path))
			if err == nil {
				t.Fatalf("err = nil, cfg = %+v; want an error", cfg)
			}
			if cfg.Auth.Enabled {
				t.Fatalf("cfg = %+v, want the zero config on error", cfg)
			}
		})
	}
}

func TestLoadStartupConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadStartupConfig(envWith(filepath.Join(t.TempDir(), "absent.yaml")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != config.BackendJSON {
		t.Fatalf("backend = %q, want %q", cfg.Storage.Backend, config.BackendJSON)
	}
}

func TestLoadStartupConfigKeepsAuth(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "volley-stats.yaml")
	body := "auth:\n  enabled: true\n  username: coach\n  password_hash: \"$2a$10$abcdefghijklmnopqrstuv\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadStartupConfig(envWith(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Auth.Enabled || cfg.Auth.Username != "coach" {
		t.Fatalf("auth = %+v, want enabled for coach", cfg.Auth)
	}
}
