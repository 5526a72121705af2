package secrets

import (
	"fmt"
	"sort"
	"strings"
)

// previewLen is how many leading characters of a secret a marker keeps.
const previewLen = 4

// Result is redacted content plus what was removed.
type Result struct {
	Content string
	Summary Summary
}

// Summary counts redactions without holding secret values.
type Summary struct {
	TotalSecrets int
	RuleCounts   map[string]int
}

// Redactor replaces secrets with [REDACTED:rule-id:preview] markers.
type Redactor struct {
	detector *Detector
}

// NewRedactor loads the allowlist files (missing ones are skipped) and
// builds a detector.
func NewRedactor(allowlistPaths ...string) (*Redactor, error) {
	allowlist, err := LoadAllowlists(allowlistPaths...)
	if err != nil {
		return nil, fmt.Errorf("loading allowlists: %w", err)
	}

	detector, err := NewDetector(allowlist)
	if err != nil {
		return nil, err
	}

	return &Redactor{detector: detector}, nil
}

// Redact returns content with every detected secret replaced by a marker.
// Each occurrence of a detected secret is replaced, longest secrets first,
// so overlapping findings never leave a partial value behind.
func (r *Redactor) Redact(content string) Result {
	findings := r.detector.Detect(content)
	if len(findings) == 0 {
		return Result{Content: content}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return len(findings[i].Secret) > len(findings[j].Secret)
	})

	counts := make(map[string]int)
	for _, f := range findings {
		counts[f.RuleID]++
		content = strings.ReplaceAll(content, f.Secret, Marker(f))
	}

	return Result{
		Content: content,
		Summary: Summary{
			TotalSecrets: len(findings),
			RuleCounts:   counts,
		},
	}
}

// Marker renders the replacement text for a finding.
func Marker(f Finding) string {
	return fmt.Sprintf("[REDACTED:%s:%s]", f.RuleID, preview(f.Secret))
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen])
}
