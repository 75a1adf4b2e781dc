package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "fable.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SaveBackend != "file" {
		t.Errorf("SaveBackend = %q, want file", cfg.SaveBackend)
	}
	if cfg.Parser != "keyword" {
		t.Errorf("Parser = %q, want keyword", cfg.Parser)
	}
	if cfg.SaveDir != "saves" {
		t.Errorf("SaveDir = %q, want saves", cfg.SaveDir)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fable.yaml")
	content := `
save_backend: sqlite
save_db: adventure.db
parser: llm
model: gemini-1.5-pro
seed: 42
tracing:
  enabled: true
  endpoint: http://collector:4318
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SaveBackend != "sqlite" || cfg.SaveDB != "adventure.db" {
		t.Errorf("save settings = %q/%q", cfg.SaveBackend, cfg.SaveDB)
	}
	if cfg.Parser != "llm" || cfg.Model != "gemini-1.5-pro" {
		t.Errorf("parser settings = %q/%q", cfg.Parser, cfg.Model)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Endpoint != "http://collector:4318" {
		t.Errorf("tracing = %+v", cfg.Tracing)
	}
	// Untouched keys keep their defaults.
	if cfg.SaveDir != "saves" {
		t.Errorf("SaveDir = %q, want saves", cfg.SaveDir)
	}
}

func TestLoad_BadBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fable.yaml")
	if err := os.WriteFile(path, []byte("save_backend: redis\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "redis") {
		t.Fatalf("expected backend error, got: %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fable.yaml")
	if err := os.WriteFile(path, []byte("save_dir: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")
	cfg, err := Load(filepath.Join(t.TempDir(), "fable.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "test-key-123" {
		t.Errorf("APIKey = %q, want env value", cfg.APIKey)
	}
}

func TestAPIKeyFileWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "fable.yaml")
	if err := os.WriteFile(path, []byte("api_key: file-key\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.APIKey)
	}
}
