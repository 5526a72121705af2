package learning

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLen is the longest title before the ellipsis is added.
	MaxTitleLen = 60
	// minBreak is the earliest position a word break may shorten a title to.
	minBreak = 30
	// MaxQuoteLen bounds evidence quotes when rendered.
	MaxQuoteLen = 200

	ellipsis = "..."
)

var (
	titleStrip    = regexp.MustCompile(`[^\w\s,.-]`)
	titleSpaceRun = regexp.MustCompile(`\s+`)
)

// DeriveTitle builds a short, single-line title from source text. Everything
// but word characters, whitespace, comma, period and hyphen is dropped,
// whitespace runs become one space, and the result is trimmed. Titles longer
// than MaxTitleLen are cut at the last space of the first MaxTitleLen
// characters when that space lies past position 30, otherwise at exactly
// MaxTitleLen, and then get "..." appended.
//
// Word characters are ASCII, so the result is ASCII and never exceeds
// MaxTitleLen+3 bytes.
func DeriveTitle(s string) string {
	cleaned := titleStrip.ReplaceAllString(s, "")
	cleaned = titleSpaceRun.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) <= MaxTitleLen {
		return cleaned
	}

	prefix := cleaned[:MaxTitleLen]
	if i := strings.LastIndexByte(prefix, ' '); i > minBreak {
		prefix = prefix[:i]
	}
	return prefix + ellipsis
}

// Quote truncates evidence to MaxQuoteLen characters, appending "..." when
// anything was cut.
func Quote(e string) string {
	return truncateRunes(e, MaxQuoteLen, ellipsis)
}

// Summary truncates a title to n characters without an ellipsis.
func Summary(title string, n int) string {
	return truncateRunes(title, n, "")
}

func truncateRunes(s string, n int, suffix string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i] + suffix
		}
		count++
	}
	return s
}
