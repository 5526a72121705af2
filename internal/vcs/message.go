package vcs

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/autoreflect/internal/learning"
)

const (
	// summaryTitleLen bounds each title in the message body.
	summaryTitleLen = 50

	// DefaultMaxSummaries is used when a non-positive limit is given.
	DefaultMaxSummaries = 5

	// Trailer closes every commit message.
	Trailer = "Captured-By: autoreflect"
)

// BuildMessage renders the commit message for records, listing at most
// maxSummaries of them.
func BuildMessage(records []learning.Record, maxSummaries int) string {
	if maxSummaries < 1 {
		maxSummaries = DefaultMaxSummaries
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("reflect(auto): capture %d session learning(s)\n\n", len(records)))

	sb.WriteString("Learnings captured:\n")
	for i, r := range records {
		if i == maxSummaries {
			break
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n", r.Confidence, r.Kind, learning.Summary(r.Title, summaryTitleLen)))
	}
	if extra := len(records) - maxSummaries; extra > 0 {
		sb.WriteString(fmt.Sprintf("... and %d more\n", extra))
	}

	tally := learning.Tally(records)
	sb.WriteString("\nConfidence breakdown:\n")
	for _, c := range learning.Confidences {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", c, tally[c]))
	}

	sb.WriteString("\n" + Trailer)
	return sb.String()
}
