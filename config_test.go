package reprise

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DBPath != "reprise.db" {
		t.Errorf("db_path: %q", cfg.DBPath)
	}
	if cfg.ListenAddr != "127.0.0.1:8099" {
		t.Errorf("listen_addr: %q", cfg.ListenAddr)
	}
	if cfg.RecentCap != 10 {
		t.Errorf("recent_cap: %d", cfg.RecentCap)
	}
	if cfg.ResolveTTL != 5*time.Minute {
		t.Errorf("resolve_ttl: %v", cfg.ResolveTTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	// WHAT: YAML values override defaults; unset fields keep them.
	path := filepath.Join(t.TempDir(), "reprise.yaml")
	yaml := "db_path: /tmp/x.db\nrecent_cap: 5\nresolve_ttl: 2m\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("db_path: %q", cfg.DBPath)
	}
	if cfg.RecentCap != 5 {
		t.Errorf("recent_cap: %d", cfg.RecentCap)
	}
	if cfg.ResolveTTL != 2*time.Minute {
		t.Errorf("resolve_ttl: %v", cfg.ResolveTTL)
	}
	if cfg.ListenAddr != "127.0.0.1:8099" {
		t.Errorf("listen_addr default lost: %q", cfg.ListenAddr)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
