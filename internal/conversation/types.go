package conversation

// Speaker identifies who produced a turn.
type Speaker string

const (
	// SpeakerHuman is the person driving the session.
	SpeakerHuman Speaker = "human"
	// SpeakerOther is the assistant, or anything else attributed by a marker.
	SpeakerOther Speaker = "other"
)

// Turn is a contiguous span of transcript attributed to one speaker.
// Text is trimmed and never empty.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// HumanTexts returns the text of every human turn, in order.
func HumanTexts(turns []Turn) []string {
	out := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.Speaker == SpeakerHuman {
			out = append(out, t.Text)
		}
	}
	return out
}
