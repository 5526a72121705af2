// Package main implements the autoreflect CLI, a Claude Code Stop hook that
// captures corrections from the session transcript into LEARNINGS.md.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/autoreflect/internal/config"
	"github.com/fyrsmithlabs/autoreflect/internal/logging"
)

var (
	// configPath overrides the default config file location
	configPath string
	// projectDir overrides the project directory
	projectDir string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "autoreflect",
	Short: "Capture session learnings from Claude Code transcripts",
	Long: `autoreflect scans a Claude Code session transcript for corrections and
preferences stated by the user and appends high-confidence learnings to
LEARNINGS.md in the project memory directory.

Run without a subcommand it behaves like "autoreflect hook": it reads the
hook payload from stdin and always exits 0.

Examples:
  # Register as a Stop hook in .claude/settings.json
  {"hooks": {"Stop": [{"hooks": [{"type": "command", "command": "autoreflect"}]}]}}

  # Turn capture on for the current project
  autoreflect enable

  # Preview what a transcript would produce
  autoreflect scan ~/.claude/projects/x/session.jsonl`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHook,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/autoreflect/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "project directory (default $CLAUDE_PROJECT_DIR, hook cwd, or current directory)")
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadWithFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if projectDir != "" {
		cfg.ProjectDir = projectDir
	}
	return cfg, nil
}

// newLogger builds the stderr logger described by cfg.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	lc, err := logging.NewConfig(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}
	lc.Output = cmd.ErrOrStderr()
	return logging.NewLogger(lc)
}

// runContext tags ctx with a fresh run ID and the logger.
func runContext(ctx context.Context, logger *logging.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())
	return logging.WithLogger(ctx, logger)
}
