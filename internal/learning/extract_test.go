package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/autoreflect/internal/conversation"
	"github.com/fyrsmithlabs/autoreflect/internal/extraction"
)

func extractFrom(t *testing.T, transcript string) []Record {
	t.Helper()
	turns := conversation.ParseHumanTurns(transcript)
	return Extract(extraction.NewDefaultClassifier().Classify(turns))
}

func TestExtract_CorrectionScenario(t *testing.T) {
	records := extractFrom(t, "Human: no, that's wrong, use tabs instead\nAssistant: ok\n")

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, KindCorrection, r.Kind)
	assert.Equal(t, ConfidenceHigh, r.Confidence)
	assert.Equal(t, "no, thats wrong, use tabs instead", r.Title)
	assert.Equal(t, "no, that's wrong, use tabs instead", r.Description)
	assert.Equal(t, []string{"no, that's wrong, use tabs instead"}, r.Evidence)
	assert.Equal(t, CategoryGeneral, r.Category)
}

func TestExtract_PreferenceScenario(t *testing.T) {
	records := extractFrom(t, "Human: I prefer snake_case for variables\nAssistant: noted\n")

	require.Len(t, records, 1)
	assert.Equal(t, KindPreference, records[0].Kind)
	assert.Equal(t, ConfidenceMedium, records[0].Confidence)
	assert.Equal(t, CategoryStyle, records[0].Category)

	assert.Empty(t, FilterByConfidence(records, ConfidenceHigh))
}

func TestExtract_ApprovalProducesNothing(t *testing.T) {
	turns := conversation.ParseHumanTurns("Human: looks good, thanks!\n")
	signals := extraction.NewDefaultClassifier().Classify(turns)

	require.Len(t, signals.Approvals, 1)
	assert.Empty(t, Extract(signals))
}

func TestExtract_OrderCorrectionsThenPreferences(t *testing.T) {
	signals := extraction.Signals{
		Corrections: []string{"c1", "c2"},
		Approvals:   []string{"a1"},
		Preferences: []string{"p1"},
	}

	records := Extract(signals)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"c1", "c2", "p1"}, []string{records[0].Description, records[1].Description, records[2].Description})
	assert.Equal(t, KindCorrection, records[1].Kind)
	assert.Equal(t, KindPreference, records[2].Kind)
	for _, r := range records {
		assert.NotEqual(t, KindApproval, r.Kind)
		assert.NotEqual(t, KindPattern, r.Kind)
	}
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, Extract(extraction.Signals{}))
}

func TestFilters(t *testing.T) {
	records := []Record{
		{Title: "a", Confidence: ConfidenceMedium},
		{Title: "b", Confidence: ConfidenceHigh},
		{Title: "c", Confidence: ConfidenceLow},
		{Title: "d", Confidence: ConfidenceHigh},
	}

	high := FilterByConfidence(records, ConfidenceHigh)
	assert.Equal(t, []string{"b", "d"}, titles(high))

	assert.Equal(t, []string{"b", "d"}, titles(FilterAtLeast(records, ConfidenceHigh)))
	assert.Equal(t, []string{"a", "b", "d"}, titles(FilterAtLeast(records, ConfidenceMedium)))
	assert.Len(t, FilterAtLeast(records, ConfidenceLow), 4)
}

func TestTally(t *testing.T) {
	tally := Tally([]Record{
		{Confidence: ConfidenceHigh},
		{Confidence: ConfidenceHigh},
		{Confidence: ConfidenceMedium},
	})
	assert.Equal(t, map[Confidence]int{
		ConfidenceHigh:   2,
		ConfidenceMedium: 1,
		ConfidenceLow:    0,
	}, tally)
}

func TestParseConfidence(t *testing.T) {
	c, err := ParseConfidence(" medium ")
	require.NoError(t, err)
	assert.Equal(t, ConfidenceMedium, c)

	_, err = ParseConfidence("certain")
	assert.Error(t, err)

	assert.True(t, ConfidenceHigh.AtLeast(ConfidenceMedium))
	assert.False(t, ConfidenceLow.AtLeast(ConfidenceMedium))
	assert.False(t, Confidence("").AtLeast(""))
}

func titles(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}
