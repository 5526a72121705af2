package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/autoreflect/internal/config"
	"github.com/fyrsmithlabs/autoreflect/internal/memory"
	"github.com/fyrsmithlabs/autoreflect/internal/state"
)

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(statusCmd)
}

// enableCmd turns capture on for the project
var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable auto-reflection for the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, true)
	},
}

// disableCmd turns capture off for the project
var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable auto-reflection for the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, false)
	},
}

// statusCmd reports the enablement state and statistics
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show auto-reflection state for the project",
	Long: `Show whether auto-reflection is enabled, when it last captured
learnings, how many it has captured in total, and where they are stored.

Examples:
  autoreflect status
  autoreflect status --project-dir ~/src/app`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// resolveProject loads config and the project directory for state commands.
func resolveProject() (*config.Config, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	dir, err := cfg.ResolveProjectDir("")
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

func setEnabled(cmd *cobra.Command, enabled bool) error {
	cfg, dir, err := resolveProject()
	if err != nil {
		return err
	}
	if _, err := state.NewStore(cfg.StatePath(dir)).SetEnabled(enabled); err != nil {
		return fmt.Errorf("failed to update state: %w", err)
	}

	word := "disabled"
	if enabled {
		word = "enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Auto-reflection %s for %s\n", word, dir)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, dir, err := resolveProject()
	if err != nil {
		return err
	}

	states := state.NewStore(cfg.StatePath(dir))
	st, err := states.Load()
	if err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}

	storePath, err := cfg.StorePath(dir)
	if err != nil {
		return err
	}
	info, err := memory.NewStore(storePath).Stat()
	if err != nil {
		return fmt.Errorf("failed to read learnings: %w", err)
	}

	last := "never"
	if st.LastReflection != nil {
		last = st.LastReflection.Format("2006-01-02 15:04:05 MST")
	}
	entries := "not created"
	if info.Exists {
		entries = fmt.Sprintf("%d entries", info.Entries)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project:           %s\n", dir)
	fmt.Fprintf(out, "Enabled:           %t\n", st.Enabled)
	fmt.Fprintf(out, "Last reflection:   %s\n", last)
	fmt.Fprintf(out, "Total reflections: %d\n", st.TotalReflections)
	fmt.Fprintf(out, "Learnings:         %s (%s)\n", storePath, entries)
	fmt.Fprintf(out, "State file:        %s\n", states.Path())
	return nil
}
