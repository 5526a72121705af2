package learning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "apostrophe stripped, commas kept",
			in:   "no, that's wrong, use tabs instead",
			want: "no, thats wrong, use tabs instead",
		},
		{
			name: "whitespace collapsed and punctuation dropped",
			in:   "Don't   use\n\ttabs!!! ok?",
			want: "Dont use tabs ok",
		},
		{
			name: "non-ascii letters dropped",
			in:   "naïve café — résumé",
			want: "nave caf rsum",
		},
		{
			name: "cut at last word break",
			in:   "please update the configuration loader so that it reads environment variables first",
			want: "please update the configuration loader so that it reads...",
		},
		{
			name: "no break past position 30 cuts at 60",
			in:   "short words " + strings.Repeat("x", 55),
			want: "short words " + strings.Repeat("x", 48) + "...",
		},
		{
			name: "single long word",
			in:   strings.Repeat("a", 70),
			want: strings.Repeat("a", 60) + "...",
		},
		{
			name: "exactly sixty kept",
			in:   strings.Repeat("b", 60),
			want: strings.Repeat("b", 60),
		},
		{
			name: "only punctuation",
			in:   "?!*&",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.in))
		})
	}
}

func TestDeriveTitle_NeverExceeds63(t *testing.T) {
	inputs := []string{
		strings.Repeat("word ", 40),
		strings.Repeat("z", 500),
		strings.Repeat("ab, cd. ef-gh ", 20),
		strings.Repeat("日本語 ", 50),
		strings.Repeat("a", 59) + " b",
	}
	for _, in := range inputs {
		assert.LessOrEqual(t, len(DeriveTitle(in)), MaxTitleLen+len(ellipsis), in)
	}
}

func TestDeriveTitle_IdempotentOnCleanShortInput(t *testing.T) {
	inputs := []string{
		"use tabs",
		"no, thats wrong, use tabs instead",
		"snake_case for variables.",
		"pre-commit hooks",
		strings.Repeat("c", 60),
	}
	for _, in := range inputs {
		once := DeriveTitle(in)
		assert.Equal(t, once, DeriveTitle(once), in)
		assert.Equal(t, in, once)
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "short", Quote("short"))

	exact := strings.Repeat("q", MaxQuoteLen)
	assert.Equal(t, exact, Quote(exact))

	long := strings.Repeat("q", MaxQuoteLen+10)
	assert.Equal(t, strings.Repeat("q", MaxQuoteLen)+"...", Quote(long))

	// Counted in characters, not bytes.
	multi := strings.Repeat("é", MaxQuoteLen+1)
	assert.Equal(t, strings.Repeat("é", MaxQuoteLen)+"...", Quote(multi))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "abc", Summary("abcdef", 3))
	assert.Equal(t, "abc", Summary("abc", 50))
}
