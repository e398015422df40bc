package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeTemp(t, "melodyd.yaml", `
addr: ":9090"
checkpoints_dir: /srv/checkpoints
mem_budget_mb: 4096
default_genre: hiphop
cors_origins:
  - https://studio.example.com
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.CheckpointsDir != "/srv/checkpoints" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.MemBudgetMB != 4096 || cfg.DefaultGenre != "hiphop" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://studio.example.com" {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadJSON(t *testing.T) {
	p := writeTemp(t, "melodyd.json", `{"addr":":7070","max_queue_depth":8,"max_wait_sec":5}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.MaxQueueDepth != 8 || cfg.MaxWaitSec != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	p := writeTemp(t, "melodyd.toml", "addr = \":6060\"\nmem_margin_mb = 256\noutput_dir = \"/tmp/renders\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":6060" || cfg.MemMarginMB != 256 || cfg.OutputDir != "/tmp/renders" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	p := writeTemp(t, "melodyd.ini", "addr=:1234")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for .ini file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	p := writeTemp(t, "bad.yaml", "addr: [:::\n  nope")
	if _, err := Load(p); err == nil {
		t.Fatal("expected parse error")
	}
}
