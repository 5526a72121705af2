// internal/config/loader.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "AUTOREFLECT_"

	// ProjectDirEnv is set by the hook host to the active project root.
	ProjectDirEnv = "CLAUDE_PROJECT_DIR"
)

// DefaultPath returns ~/.config/autoreflect/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "autoreflect", "config.yaml"), nil
}

// Load loads configuration from the default file location and the
// environment.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads configuration from a YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (AUTOREFLECT_MEMORY_LEVEL, AUTOREFLECT_COMMIT_ENABLED, ...)
//  2. YAML config file (~/.config/autoreflect/config.yaml or configPath)
//  3. Defaults
//
// A missing default file is not an error; a missing explicit file is.
// Files larger than 1MB are rejected.
//
// Environment variables map to keys by stripping the prefix, lowercasing and
// splitting on the first underscore:
//
//	AUTOREFLECT_MEMORY_LEVEL      -> memory.level
//	AUTOREFLECT_COMMIT_MAX_SUMMARIES -> commit.max_summaries
//	AUTOREFLECT_PROJECT_DIR       -> project_dir
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	explicit := configPath != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	content, err := readConfigFile(configPath)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// envKey maps AUTOREFLECT_SECTION_FIELD_NAME to section.field_name.
// Keys that cannot be expressed as a scalar are dropped.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))

	switch lower {
	case "project_dir":
		return lower
	case "signals_extra_rules":
		return ""
	}

	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("config file %s is not a regular file", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// applyDefaults fills values that depend on the environment rather than
// on a literal default.
func applyDefaults(cfg *Config) {
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = os.Getenv(ProjectDirEnv)
	}
	cfg.Persist.MinConfidence = strings.ToUpper(cfg.Persist.MinConfidence)
	cfg.Memory.Level = MemoryLevel(strings.ToLower(string(cfg.Memory.Level)))
}
