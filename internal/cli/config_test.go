package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	return New(os.Stderr, log.WarnLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	c := testCLI(t)
	c.ConfigPath = "" // default location; point XDG at an empty dir
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("default backend = %q, want file", cfg.Backend)
	}
	if !cfg.PreventOverlap {
		t.Error("overlap prevention should default on")
	}
	if got := cfg.gridConfig(); got.Cols != 12 {
		t.Errorf("default cols = %d, want 12", got.Cols)
	}
}

func TestLoadConfigFile(t *testing.T) {
	c := testCLI(t)
	c.ConfigPath = writeConfig(t, `
backend = "redis"
prevent_overlap = false
theme = "dark"

[grid]
cols = 8
row_height = 80.0

[redis]
addr = "redis.example:6379"
db = 2
`)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend != BackendRedis {
		t.Errorf("backend = %q", cfg.Backend)
	}
	if cfg.PreventOverlap {
		t.Error("prevent_overlap = true, want false")
	}
	if cfg.Redis.Addr != "redis.example:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	gc := cfg.gridConfig()
	if gc.Cols != 8 || gc.RowHeight != 80 {
		t.Errorf("grid = %+v", gc)
	}
	// Unset grid fields keep their defaults.
	if gc.Gap != 10 {
		t.Errorf("gap = %g, want default 10", gc.Gap)
	}
}

func TestNewStoreAppliesConfiguredGrid(t *testing.T) {
	c := testCLI(t)
	c.ConfigPath = writeConfig(t, `
backend = "memory"

[grid]
cols = 6
`)

	st, _, err := c.newStore(context.Background())
	if err != nil {
		t.Fatalf("newStore: %v", err)
	}
	defer st.Close()

	// Nothing is persisted yet, so the fresh dashboard picks up the
	// configured geometry.
	if got := st.GridConfig(); got.Cols != 6 {
		t.Errorf("fresh dashboard cols = %d, want 6", got.Cols)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", `backend = "dynamo"`},
		{"unknown theme", `theme = "solarized"`},
		{"bad grid", "[grid]\ncols = 99"},
		{"malformed toml", `backend = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI(t)
			c.ConfigPath = writeConfig(t, tt.content)
			if _, err := c.loadConfig(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	c := testCLI(t)
	c.ConfigPath = filepath.Join(t.TempDir(), "absent.toml")
	if _, err := c.loadConfig(); err == nil {
		t.Error("explicit --config pointing nowhere should error")
	}
}
