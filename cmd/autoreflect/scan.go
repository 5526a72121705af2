package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/autoreflect/internal/reflection"
)

var (
	// scanJSON prints the analysis as JSON
	scanJSON bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the analysis as JSON")
}

// scanCmd is a dry run over a transcript file
var scanCmd = &cobra.Command{
	Use:   "scan <transcript>",
	Short: "Show the learnings a transcript would produce",
	Long: `Parse and classify a transcript without writing anything.

Accepts Claude Code JSONL transcripts and plain-text transcripts using
"Human:" / "Assistant:" markers.

Examples:
  autoreflect scan session.jsonl
  autoreflect scan --json notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := reflection.New(cfg)
	if err != nil {
		return err
	}

	a, err := p.Scan(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scanJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	printAnalysis(out, a, cfg.Persist.MinConfidence)
	return nil
}

func printAnalysis(w io.Writer, a reflection.Analysis, minConfidence string) {
	fmt.Fprintf(w, "Human turns: %d\n", len(a.HumanTurns))
	fmt.Fprintf(w, "Signals: %d correction, %d preference, %d approval\n",
		len(a.Signals.Corrections), len(a.Signals.Preferences), len(a.Signals.Approvals))
	for _, m := range a.Matches {
		fmt.Fprintf(w, "  [%s] (%s) %s\n", m.Category, m.Rule, m.Text)
	}

	fmt.Fprintf(w, "Records: %d, %d at or above %s\n", len(a.Records), len(a.Kept), minConfidence)
	for _, r := range a.Records {
		fmt.Fprintf(w, "  [%s] %s: %s\n", r.Confidence, r.Kind, r.Title)
	}
}
