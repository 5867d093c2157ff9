package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxHistory != 500 {
		t.Errorf("MaxHistory = %d, want 500", cfg.MaxHistory)
	}
	if cfg.MaxClipChars != 200000 {
		t.Errorf("MaxClipChars = %d, want 200000", cfg.MaxClipChars)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"max_history": 100, "db_max_open_conns": 1, "disabled_tools": ["clip_clear"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxHistory != 100 {
		t.Errorf("MaxHistory = %d, want 100", cfg.MaxHistory)
	}
	// Unset scalar falls back to default
	if cfg.MaxClipChars != 200000 {
		t.Errorf("MaxClipChars = %d, want 200000", cfg.MaxClipChars)
	}
	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", cfg.DBMaxOpenConns)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "clip_clear" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load with invalid JSON should fail")
	}
}

func TestMerge_ArraysDeduplicated(t *testing.T) {
	base := &Config{DisabledTools: []string{"clip_clear", "clip_prune"}}
	overlay := &Config{DisabledTools: []string{" clip_clear ", "clip_import"}}

	merged := Merge(base, overlay)

	want := []string{"clip_clear", "clip_prune", "clip_import"}
	if len(merged.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", merged.DisabledTools, want)
	}
	for i, s := range want {
		if merged.DisabledTools[i] != s {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, merged.DisabledTools[i], s)
		}
	}
}

func TestMerge_EmptyArraysStayNil(t *testing.T) {
	merged := Merge(&Config{}, &Config{DisabledTools: []string{"  "}})
	if merged.DisabledTools != nil {
		t.Errorf("DisabledTools = %v, want nil", merged.DisabledTools)
	}
}
