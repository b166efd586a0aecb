package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.ListenAddr == "" || cfg.ScriptDir == "" || len(cfg.CorsOrigins) == 0 {
		t.Fatalf("expected a fully populated default config, got %+v", cfg)
	}
}

func TestLoadOverlaysOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songlang.yaml")
	if err := os.WriteFile(path, []byte("listenAddr: \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("expected overridden ListenAddr, got %q", cfg.ListenAddr)
	}
	if cfg.ScriptDir != Default().ScriptDir {
		t.Errorf("expected ScriptDir to keep its default, got %q", cfg.ScriptDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("listenAddr: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
