package reflection

// Status is the terminal state of a run.
type Status string

const (
	StatusNoop      Status = "noop"
	StatusPersisted Status = "persisted"
	StatusFailed    Status = "failed"
)

// No-op reasons.
const (
	ReasonDisabled         = "disabled"
	ReasonNoTranscript     = "no_transcript"
	ReasonNoHumanTurns     = "no_human_turns"
	ReasonNoSignals        = "no_signals"
	ReasonNoHighConfidence = "no_high_confidence"
)

// Failure reasons.
const (
	ReasonProjectDir = "project_dir"
	ReasonRedactor   = "redactor"
	ReasonStore      = "store"
	ReasonPanic      = "panic"
)

// Outcome reports what a run did.
type Outcome struct {
	Status Status `json:"status"`
	// Reason names the no-op cause or the failure; empty when persisted.
	Reason string `json:"reason,omitempty"`
	// Persisted is the number of records appended to the learnings file.
	Persisted int `json:"persisted"`
	// Committed is the short hash of the memory commit, if one was made.
	Committed string `json:"committed,omitempty"`
}

func noop(reason string) Outcome {
	return Outcome{Status: StatusNoop, Reason: reason}
}

func failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}
