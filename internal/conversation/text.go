package conversation

import (
	"regexp"
	"strings"
)

var (
	humanMarker     = regexp.MustCompile(`(?i)^(human|user|h):\s*`)
	assistantMarker = regexp.MustCompile(`(?i)^(assistant|claude|a):\s*`)
)

// Parse splits a plain-text transcript into attributed turns.
//
// A speaker marker at the start of a line closes the open turn and opens a
// new one seeded with the rest of the line. Unmarked lines continue the open
// turn, joined with a single space. Lines before the first marker belong to
// no one and are dropped.
func Parse(text string) []Turn {
	var (
		turns   []Turn
		current strings.Builder
		speaker Speaker
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		if t := strings.TrimSpace(current.String()); t != "" {
			turns = append(turns, Turn{Speaker: speaker, Text: t})
		}
		current.Reset()
		open = false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if loc := humanMarker.FindStringIndex(line); loc != nil {
			flush()
			speaker, open = SpeakerHuman, true
			current.WriteString(line[loc[1]:])
			continue
		}
		if loc := assistantMarker.FindStringIndex(line); loc != nil {
			flush()
			speaker, open = SpeakerOther, true
			current.WriteString(line[loc[1]:])
			continue
		}
		if open {
			current.WriteByte(' ')
			current.WriteString(line)
		}
	}
	flush()

	return turns
}

// ParseHumanTurns returns the human turns of a plain-text transcript, in
// order of appearance.
func ParseHumanTurns(text string) []string {
	return HumanTexts(Parse(text))
}
