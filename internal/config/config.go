// Package config provides configuration loading for autoreflect.
//
// Configuration is layered: built-in defaults, an optional YAML file, then
// AUTOREFLECT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Config holds the complete autoreflect configuration.
type Config struct {
	ProjectDir string          `koanf:"project_dir"`
	Memory     MemoryConfig    `koanf:"memory"`
	State      StateConfig     `koanf:"state"`
	Persist    PersistConfig   `koanf:"persist"`
	Commit     CommitConfig    `koanf:"commit"`
	Redaction  RedactionConfig `koanf:"redaction"`
	Metrics    MetricsConfig   `koanf:"metrics"`
	Signals    SignalsConfig   `koanf:"signals"`
	Log        LogConfig       `koanf:"log"`
}

// MemoryConfig selects where LEARNINGS.md lives.
type MemoryConfig struct {
	Level MemoryLevel `koanf:"level"`
	File  string      `koanf:"file"`
}

// StateConfig locates the enablement state file. Relative paths are
// resolved against the project directory.
type StateConfig struct {
	File string `koanf:"file"`
}

// PersistConfig controls which learnings are written.
type PersistConfig struct {
	MinConfidence string `koanf:"min_confidence"`
}

// CommitConfig controls the best-effort git commit after a write.
type CommitConfig struct {
	Enabled      bool `koanf:"enabled"`
	MaxSummaries int  `koanf:"max_summaries"`
}

// RedactionConfig controls secret redaction of persisted text.
type RedactionConfig struct {
	Enabled bool `koanf:"enabled"`
	// Allowlist is an optional gitleaks-style TOML file. Relative paths are
	// resolved against the project directory.
	Allowlist string `koanf:"allowlist"`
}

// MetricsConfig controls the prometheus textfile export.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// SignalsConfig extends the built-in classification rules.
type SignalsConfig struct {
	ExtraRules []RuleConfig `koanf:"extra_rules"`
}

// RuleConfig is a user-supplied classification rule.
type RuleConfig struct {
	Name     string `koanf:"name"`
	Category string `koanf:"category"`
	Pattern  string `koanf:"pattern"`
}

// LogConfig holds the textual logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Memory: MemoryConfig{
			Level: LevelProject,
			File:  "LEARNINGS.md",
		},
		State: StateConfig{
			File: ".claude-project/state/reflect-enabled.json",
		},
		Persist: PersistConfig{
			MinConfidence: "HIGH",
		},
		Commit: CommitConfig{
			Enabled:      true,
			MaxSummaries: 5,
		},
		Redaction: RedactionConfig{
			Enabled:   true,
			Allowlist: ".gitleaks.toml",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

var validCategories = map[string]bool{
	"correction": true,
	"approval":   true,
	"preference": true,
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	switch c.Memory.Level {
	case LevelPersonal, LevelTeam, LevelProject:
	default:
		errs = append(errs, fmt.Errorf("memory.level must be personal, team or project, got %q", c.Memory.Level))
	}
	if c.Memory.File == "" || strings.ContainsAny(c.Memory.File, `/\`) {
		errs = append(errs, fmt.Errorf("memory.file must be a plain file name, got %q", c.Memory.File))
	}
	if c.State.File == "" {
		errs = append(errs, errors.New("state.file is required"))
	}

	switch strings.ToUpper(c.Persist.MinConfidence) {
	case "HIGH", "MEDIUM", "LOW":
	default:
		errs = append(errs, fmt.Errorf("persist.min_confidence must be HIGH, MEDIUM or LOW, got %q", c.Persist.MinConfidence))
	}

	if c.Commit.MaxSummaries < 1 {
		errs = append(errs, fmt.Errorf("commit.max_summaries must be >= 1, got %d", c.Commit.MaxSummaries))
	}

	for i, r := range c.Signals.ExtraRules {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("signals.extra_rules[%d]: name is required", i))
		}
		if !validCategories[r.Category] {
			errs = append(errs, fmt.Errorf("signals.extra_rules[%d]: unknown category %q", i, r.Category))
		}
		if _, err := regexp.Compile(r.Pattern); err != nil || r.Pattern == "" {
			errs = append(errs, fmt.Errorf("signals.extra_rules[%d]: invalid pattern %q", i, r.Pattern))
		}
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
