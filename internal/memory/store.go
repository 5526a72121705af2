// Package memory appends learning records to a human-readable markdown log.
//
// The log is append-only: existing content is never rewritten or reordered.
// It is created lazily, with a fixed preamble, on the first write.
package memory

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fyrsmithlabs/autoreflect/internal/learning"
	"github.com/fyrsmithlabs/autoreflect/internal/secrets"
)

// Preamble opens every new learnings file.
const Preamble = `# Session Learnings

Auto-captured and manually-extracted learnings from conversation analysis.
This file is version-controlled and grows over time.

---

## How This File Works

- **Auto-captured**: HIGH confidence learnings are added automatically (if enabled)
- **Manual**: Use ` + "`/reflect`" + ` to add learnings manually
- **Version-controlled**: All changes are committed to git
- **Human-readable**: Plain markdown for easy review

---

## Entries

<!-- Learnings are appended below this line -->
`

// SourceLabel marks entries written by the hook.
const SourceLabel = "Auto-reflection"

// Redactor scrubs secrets from text before it is written.
type Redactor interface {
	Redact(content string) secrets.Result
}

// Store is an append-only learnings file.
type Store struct {
	path     string
	redactor Redactor
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithRedactor scrubs titles, descriptions and evidence before writing.
func WithRedactor(r Redactor) Option {
	return func(s *Store) { s.redactor = r }
}

// WithClock overrides the time used for entry dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a store writing to path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the learnings file location.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the memory directory holding the learnings file.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// AppendResult describes one Append call.
type AppendResult struct {
	Written    int
	Created    bool
	Redactions int
	// Records are the records as written, after redaction. Anything that
	// leaves the store, such as a commit message, must be built from these.
	Records []learning.Record
}

// Append writes records to the end of the file in order. Nothing is created
// or written when records is empty.
func (s *Store) Append(records []learning.Record) (AppendResult, error) {
	var res AppendResult
	if len(records) == 0 {
		return res, nil
	}

	created, err := s.ensureFile()
	if err != nil {
		return res, err
	}
	res.Created = created

	date := s.now().UTC().Format("2006-01-02")
	entries := make([]string, 0, len(records))
	written := make([]learning.Record, 0, len(records))
	for _, r := range records {
		r, n := s.scrub(r)
		res.Redactions += n
		written = append(written, r)
		entries = append(entries, FormatEntry(r, date))
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return res, fmt.Errorf("opening learnings file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(entries, "\n")); err != nil {
		return res, fmt.Errorf("appending learnings: %w", err)
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("closing learnings file: %w", err)
	}

	res.Written = len(records)
	res.Records = written
	return res, nil
}

// ensureFile creates the directory and the preamble when the file is absent.
func (s *Store) ensureFile() (bool, error) {
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return false, fmt.Errorf("creating memory dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating learnings file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(Preamble); err != nil {
		return true, fmt.Errorf("writing preamble: %w", err)
	}
	return true, f.Close()
}

func (s *Store) scrub(r learning.Record) (learning.Record, int) {
	if s.redactor == nil {
		return r, 0
	}

	total := 0
	clean := func(text string) string {
		res := s.redactor.Redact(text)
		total += res.Summary.TotalSecrets
		return res.Content
	}

	// The title is derived from the description, so a redacted description
	// gets a fresh title instead of a title with markers spliced in.
	if desc := clean(r.Description); desc != r.Description {
		r.Description = desc
		r.Title = learning.DeriveTitle(desc)
	} else if title := clean(r.Title); title != r.Title {
		r.Title = learning.DeriveTitle(title)
	}
	evidence := make([]string, len(r.Evidence))
	for i, e := range r.Evidence {
		evidence[i] = clean(e)
	}
	r.Evidence = evidence

	return r, total
}

// FormatEntry renders one record as a markdown section dated date.
func FormatEntry(r learning.Record, date string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n### %s: %s\n\n", date, r.Title))
	sb.WriteString(fmt.Sprintf("**Type**: %s\n", r.Kind))
	sb.WriteString(fmt.Sprintf("**Confidence**: %s\n", r.Confidence))
	sb.WriteString(fmt.Sprintf("**Source**: %s\n\n", SourceLabel))
	sb.WriteString(fmt.Sprintf("**Description**: %s\n\n", r.Description))
	sb.WriteString("**Evidence**:\n")
	for _, e := range r.Evidence {
		sb.WriteString(fmt.Sprintf("- \"%s\"\n", learning.Quote(e)))
	}
	sb.WriteString("\n---\n")

	return sb.String()
}

// Info summarises the learnings file.
type Info struct {
	Exists  bool
	Entries int
}

// Stat reports whether the file exists and how many entries it holds.
func (s *Store) Stat() (Info, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("opening learnings file: %w", err)
	}
	defer f.Close()

	info := Info{Exists: true}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "### ") {
			info.Entries++
		}
	}
	if err := scanner.Err(); err != nil {
		return info, fmt.Errorf("reading learnings file: %w", err)
	}
	return info, nil
}
