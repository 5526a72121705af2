// Package learning turns classified signals into learning records.
package learning

import (
	"fmt"
	"strings"
)

// Kind is the type of lesson a record captures.
type Kind string

const (
	KindCorrection Kind = "correction"
	KindPreference Kind = "preference"
	// KindPattern is reserved; the extractor never produces it.
	KindPattern Kind = "pattern"
	// KindApproval is declared but approvals do not become records.
	KindApproval Kind = "approval"
)

// Confidence grades how strongly a record should be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Confidences lists every grade from strongest to weakest.
var Confidences = []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}

// ParseConfidence parses a grade, ignoring case.
func ParseConfidence(s string) (Confidence, error) {
	c := Confidence(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return c, nil
	default:
		return "", fmt.Errorf("unknown confidence %q", s)
	}
}

// rank orders grades; higher is stronger.
func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether c is as strong as min.
func (c Confidence) AtLeast(min Confidence) bool {
	return c.rank() >= min.rank() && c.rank() > 0
}

// Record is one durable learning.
type Record struct {
	Title       string     `json:"title"`
	Kind        Kind       `json:"type"`
	Confidence  Confidence `json:"confidence"`
	Description string     `json:"description"`
	Evidence    []string   `json:"evidence"`
	// Category is a free-form grouping tag.
	Category string `json:"category"`
}
