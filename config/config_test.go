package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yoanbernabeu/locmon/config"
)

// ---- helpers ----

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// ---- Load ----

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvMaxLineCount, "")
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Extension != ".py" {
		t.Errorf("Extension = %q, want .py", cfg.Extension)
	}
	if cfg.MaxLineCount != config.ThresholdDisabled {
		t.Errorf("MaxLineCount = %d, want sentinel %d", cfg.MaxLineCount, config.ThresholdDisabled)
	}
	if !cfg.RespectGitignore {
		t.Error("RespectGitignore = false, want true by default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv(config.EnvMaxLineCount, "")
	dir := t.TempDir()
	writeConfigFile(t, dir, "extension: .pyx\nmax_line_count: 500\nrespect_gitignore: false\n")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Extension != ".pyx" {
		t.Errorf("Extension = %q, want .pyx", cfg.Extension)
	}
	if cfg.MaxLineCount != 500 {
		t.Errorf("MaxLineCount = %d, want 500", cfg.MaxLineCount)
	}
	if cfg.RespectGitignore {
		t.Error("RespectGitignore = true, want false")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "max_line_count: 500\n")
	t.Setenv(config.EnvMaxLineCount, "100")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxLineCount != 100 {
		t.Errorf("MaxLineCount = %d, want env override 100", cfg.MaxLineCount)
	}
}

func TestLoad_EnvNotInteger(t *testing.T) {
	t.Setenv(config.EnvMaxLineCount, "plenty")
	if _, err := config.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for non-integer MAX_LINE_COUNT, got nil")
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	t.Setenv(config.EnvMaxLineCount, "")
	dir := t.TempDir()
	writeConfigFile(t, dir, "max_lines: 10\n")
	if _, err := config.Load(dir); err == nil {
		t.Fatal("expected error for unknown config key, got nil")
	}
}

// ---- ThresholdEnabled ----

func TestThresholdEnabled(t *testing.T) {
	cases := []struct {
		max  int
		want bool
	}{
		{config.ThresholdDisabled, false},
		{-5, false},
		{0, true},
		{100, true},
	}
	for _, c := range cases {
		cfg := config.Config{MaxLineCount: c.max}
		if got := cfg.ThresholdEnabled(); got != c.want {
			t.Errorf("ThresholdEnabled with %d = %v, want %v", c.max, got, c.want)
		}
	}
}
