// internal/config/paths.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// MemoryLevel selects which memory directory receives learnings.
type MemoryLevel string

const (
	// LevelPersonal is ~/.claude/memory, shared across projects.
	LevelPersonal MemoryLevel = "personal"
	// LevelTeam is <project>/.claude/base/memory, usually checked in by a team.
	LevelTeam MemoryLevel = "team"
	// LevelProject is <project>/.claude-project/memory.
	LevelProject MemoryLevel = "project"
)

// ResolveProjectDir returns the project directory for a run. The configured
// value (or CLAUDE_PROJECT_DIR) wins, then the working directory reported by
// the hook host, then the process working directory.
func (c *Config) ResolveProjectDir(hookCwd string) (string, error) {
	dir := c.ProjectDir
	if dir == "" {
		dir = hookCwd
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project dir %s: %w", dir, err)
	}
	return abs, nil
}

// MemoryDir returns the memory directory for the configured level.
func (c *Config) MemoryDir(projectDir string) (string, error) {
	switch c.Memory.Level {
	case LevelPersonal:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".claude", "memory"), nil
	case LevelTeam:
		return filepath.Join(projectDir, ".claude", "base", "memory"), nil
	case LevelProject, "":
		return filepath.Join(projectDir, ".claude-project", "memory"), nil
	default:
		return "", fmt.Errorf("unknown memory level %q", c.Memory.Level)
	}
}

// StorePath returns the full path of the learnings file.
func (c *Config) StorePath(projectDir string) (string, error) {
	dir, err := c.MemoryDir(projectDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Memory.File), nil
}

// StatePath returns the full path of the enablement state file.
func (c *Config) StatePath(projectDir string) string {
	return resolve(projectDir, c.State.File)
}

// AllowlistPath returns the redaction allowlist path, or "" when unset.
func (c *Config) AllowlistPath(projectDir string) string {
	if c.Redaction.Allowlist == "" {
		return ""
	}
	return resolve(projectDir, c.Redaction.Allowlist)
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
