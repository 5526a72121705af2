// Package secrets redacts credentials from text before it reaches a
// version-controlled file.
//
// Detection uses the gitleaks default rule set. A project may suppress false
// positives with a gitleaks-style TOML allowlist:
//
//	[allowlist]
//	regexes = ['''EXAMPLE_KEY''']
//	stopwords = ["dummy"]
//
// Redacted values are replaced by [REDACTED:<rule-id>:<preview>] markers.
// Summaries carry rule IDs and counts only, never secret values.
package secrets
