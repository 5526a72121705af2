package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/autoreflect/internal/hooks"
	"github.com/fyrsmithlabs/autoreflect/internal/reflection"
)

func init() {
	rootCmd.AddCommand(hookCmd)
}

// hookCmd runs one reflection from a Claude Code hook payload
var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run auto-reflection from a hook payload on stdin",
	Long: `Read the Claude Code hook payload from stdin and capture learnings from
the transcript it names.

Nothing is written unless auto-reflection is enabled for the project. The
command always exits 0 so it can never block the session; problems are
reported on stderr.

Examples:
  echo '{"transcript_path": "/tmp/session.jsonl", "cwd": "/src/app"}' | autoreflect hook`,
	Args: cobra.NoArgs,
	RunE: runHook,
}

// runHook never returns an error.
func runHook(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "[reflect] config: %v\n", err)
		return nil
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "[reflect] %v\n", err)
		return nil
	}
	defer func() { _ = logger.Sync() }()

	ctx := runContext(cmd.Context(), logger)

	in, err := hooks.Decode(cmd.InOrStdin())
	if err != nil {
		logger.Warn(ctx, "ignoring hook input", zap.Error(err))
		return nil
	}

	p, err := reflection.New(cfg, reflection.WithStderr(stderr))
	if err != nil {
		logger.Error(ctx, "building reflection pipeline", zap.Error(err))
		return nil
	}

	p.Run(ctx, in)
	return nil
}
