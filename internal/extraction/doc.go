// Package extraction classifies human turns into learning signals using
// heuristic pattern matching.
//
// # Architecture
//
// The main components are:
//   - Rule: a named, case-insensitive regular expression bound to a Category
//   - Classifier: evaluates rule-sets in fixed precedence order
//   - Signals: the classified turns, grouped by category
//
// Each turn receives at most one category. Rule-sets are tried in the order
// correction, preference, approval; the first rule-set with any matching rule
// claims the turn. A turn no rule matches yields no signal.
//
// # Usage
//
//	c, err := extraction.NewClassifier(extraction.DefaultRules())
//	if err != nil {
//	    return err
//	}
//	signals := c.Classify(humanTurns)
//	fmt.Println(len(signals.Corrections), signals.Total())
//
// Rules are data. Additional rules are appended to the defaults:
//
//	rules := append(extraction.DefaultRules(), extraction.Rule{
//	    Name:     "tabs_over_spaces",
//	    Category: extraction.CategoryPreference,
//	    Pattern:  `(?i)\btabs over spaces\b`,
//	})
package extraction
