package extraction

import (
	"fmt"
	"regexp"
)

// Classifier assigns at most one Category to each human turn.
type Classifier struct {
	byCategory map[Category][]*compiledRule
}

// compiledRule holds a pre-compiled rule.
type compiledRule struct {
	Rule
	regex *regexp.Regexp
}

// NewClassifier compiles rules. An invalid pattern or unknown category is an
// error; no rule is skipped.
func NewClassifier(rules []Rule) (*Classifier, error) {
	c := &Classifier{byCategory: make(map[Category][]*compiledRule, len(precedence))}

	for _, r := range rules {
		if _, err := ParseCategory(string(r.Category)); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %q: empty pattern", r.Name)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid pattern: %w", r.Name, err)
		}
		c.byCategory[r.Category] = append(c.byCategory[r.Category], &compiledRule{Rule: r, regex: re})
	}

	return c, nil
}

// NewDefaultClassifier returns a classifier over DefaultRules.
func NewDefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("extraction: default rules: %v", err))
	}
	return c
}

// Match classifies a single turn. The boolean is false when no rule matches.
func (c *Classifier) Match(turn string) (Signal, bool) {
	for _, cat := range precedence {
		for _, r := range c.byCategory[cat] {
			if r.regex.MatchString(turn) {
				return Signal{Category: cat, Text: turn, Rule: r.Name}, true
			}
		}
	}
	return Signal{}, false
}

// Classify classifies every turn, preserving order within each category.
func (c *Classifier) Classify(turns []string) Signals {
	s, _ := c.ClassifyDetailed(turns)
	return s
}

// ClassifyDetailed is Classify that also returns each match with the rule
// that produced it, in turn order.
func (c *Classifier) ClassifyDetailed(turns []string) (Signals, []Signal) {
	var (
		s       Signals
		matches []Signal
	)
	for _, t := range turns {
		if sig, ok := c.Match(t); ok {
			s.add(sig)
			matches = append(matches, sig)
		}
	}
	return s, matches
}
