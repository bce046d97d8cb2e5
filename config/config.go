// Package config resolves the scan configuration from an optional project
// file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ThresholdDisabled is the sentinel meaning no line budget is enforced.
// Any negative MaxLineCount disables the check.
const ThresholdDisabled = -1

// FileName is the optional per-project configuration file, read from the
// scan root.
const FileName = ".locmon.yml"

// EnvMaxLineCount overrides the configured line budget. The CI gate sets it
// to a non-negative integer; anything negative keeps the gate off.
const EnvMaxLineCount = "MAX_LINE_COUNT"

// DefaultExtension is the source file extension scanned when nothing else
// is configured.
const DefaultExtension = ".py"

// Config controls what gets scanned and the enforced line budget.
type Config struct {
	Extension        string `yaml:"extension"`
	MaxLineCount     int    `yaml:"max_line_count"`
	RespectGitignore bool   `yaml:"respect_gitignore"`
}

// Default returns the configuration used when no file or env override exists.
func Default() Config {
	return Config{
		Extension:        DefaultExtension,
		MaxLineCount:     ThresholdDisabled,
		RespectGitignore: true,
	}
}

// Load resolves the effective configuration for a scan rooted at root:
// defaults, then .locmon.yml when present, then the MAX_LINE_COUNT
// environment variable. A .env file in the working directory is honored
// before the environment is read.
func Load(root string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(filepath.Join(root, FileName))
	switch {
	case err == nil:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", FileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("config: read %s: %w", FileName, err)
	}

	if raw := os.Getenv(EnvMaxLineCount); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s must be an integer, got %q", EnvMaxLineCount, raw)
		}
		cfg.MaxLineCount = max
	}

	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	return cfg, nil
}

// ThresholdEnabled reports whether a line budget is configured.
func (c Config) ThresholdEnabled() bool {
	return c.MaxLineCount >= 0
}
