package reflection

import (
	"github.com/fyrsmithlabs/autoreflect/internal/conversation"
	"github.com/fyrsmithlabs/autoreflect/internal/extraction"
	"github.com/fyrsmithlabs/autoreflect/internal/learning"
)

// Analysis is everything a run derives from a transcript before writing.
type Analysis struct {
	HumanTurns []string            `json:"human_turns"`
	Signals    extraction.Signals  `json:"signals"`
	Matches    []extraction.Signal `json:"matches"`
	Records    []learning.Record   `json:"records"`
	// Kept are the records that pass the confidence filter.
	Kept []learning.Record `json:"kept"`
}

// Analyze classifies the human turns and extracts records. It has no side
// effects.
func (p *Pipeline) Analyze(turns []conversation.Turn) Analysis {
	human := conversation.HumanTexts(turns)
	signals, matches := p.classifier.ClassifyDetailed(human)
	records := learning.Extract(signals)
	return Analysis{
		HumanTurns: human,
		Signals:    signals,
		Matches:    matches,
		Records:    records,
		Kept:       learning.FilterAtLeast(records, p.minConfidence),
	}
}

// Scan loads the transcript at path and analyzes it without writing
// anything.
func (p *Pipeline) Scan(path string) (Analysis, error) {
	turns, err := conversation.Load(path)
	if err != nil {
		return Analysis{}, err
	}
	return p.Analyze(turns), nil
}
