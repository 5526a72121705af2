package conversation

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format names a transcript encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatJSONL Format = "jsonl"
)

// DetectFormat reports FormatJSONL when the path ends in .jsonl or the first
// non-blank line of content is a JSON object, FormatText otherwise.
func DetectFormat(path string, content []byte) Format {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] == '{' && line[len(line)-1] == '}' {
			return FormatJSONL
		}
		return FormatText
	}
	return FormatText
}

// Load reads the transcript at path and returns its turns.
func Load(path string) ([]Turn, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	switch DetectFormat(path, content) {
	case FormatJSONL:
		return ParseJSONL(bytes.NewReader(content))
	default:
		return Parse(string(content)), nil
	}
}
