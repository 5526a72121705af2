package extraction

import "fmt"

// Category is the kind of signal a human turn carries.
type Category string

const (
	CategoryCorrection Category = "correction"
	CategoryApproval   Category = "approval"
	CategoryPreference Category = "preference"
)

// precedence is the order in which rule-sets are evaluated.
var precedence = []Category{CategoryCorrection, CategoryPreference, CategoryApproval}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryCorrection, CategoryApproval, CategoryPreference:
		return c, nil
	default:
		return "", fmt.Errorf("unknown signal category %q", s)
	}
}

// Rule is one classification predicate.
type Rule struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	// Pattern is an RE2 expression. Defaults use (?i) for case-insensitive
	// search; matching anywhere in the turn classifies the whole turn.
	Pattern string `json:"pattern"`
}

// Signal is a classified human turn.
type Signal struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
	Rule     string   `json:"rule"`
}

// Signals groups classified turns by category. Each slice keeps the
// original relative order and the verbatim turn text.
type Signals struct {
	Corrections []string `json:"corrections"`
	Approvals   []string `json:"approvals"`
	Preferences []string `json:"preferences"`
}

// Total returns the number of classified turns.
func (s Signals) Total() int {
	return len(s.Corrections) + len(s.Approvals) + len(s.Preferences)
}

// Empty reports whether no turn was classified.
func (s Signals) Empty() bool {
	return s.Total() == 0
}

func (s *Signals) add(sig Signal) {
	switch sig.Category {
	case CategoryCorrection:
		s.Corrections = append(s.Corrections, sig.Text)
	case CategoryApproval:
		s.Approvals = append(s.Approvals, sig.Text)
	case CategoryPreference:
		s.Preferences = append(s.Preferences, sig.Text)
	}
}
