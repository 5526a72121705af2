package learning

import (
	"github.com/fyrsmithlabs/autoreflect/internal/extraction"
)

// Grouping tags assigned by Extract.
const (
	CategoryGeneral = "general"
	CategoryStyle   = "style"
)

// Extract converts signals into records: one HIGH-confidence correction per
// correction signal, then one MEDIUM-confidence preference per preference
// signal, each in input order. Approvals produce no records.
func Extract(signals extraction.Signals) []Record {
	records := make([]Record, 0, len(signals.Corrections)+len(signals.Preferences))

	for _, text := range signals.Corrections {
		records = append(records, newRecord(text, KindCorrection, ConfidenceHigh, CategoryGeneral))
	}
	for _, text := range signals.Preferences {
		records = append(records, newRecord(text, KindPreference, ConfidenceMedium, CategoryStyle))
	}

	return records
}

func newRecord(text string, kind Kind, conf Confidence, category string) Record {
	return Record{
		Title:       DeriveTitle(text),
		Kind:        kind,
		Confidence:  conf,
		Description: text,
		Evidence:    []string{text},
		Category:    category,
	}
}

// FilterByConfidence keeps records whose confidence equals c, in order.
func FilterByConfidence(records []Record, c Confidence) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Confidence == c {
			out = append(out, r)
		}
	}
	return out
}

// FilterAtLeast keeps records at or above min, in order.
func FilterAtLeast(records []Record, min Confidence) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Confidence.AtLeast(min) {
			out = append(out, r)
		}
	}
	return out
}

// Tally counts records per confidence grade.
func Tally(records []Record) map[Confidence]int {
	t := make(map[Confidence]int, len(Confidences))
	for _, c := range Confidences {
		t[c] = 0
	}
	for _, r := range records {
		t[r.Confidence]++
	}
	return t
}
