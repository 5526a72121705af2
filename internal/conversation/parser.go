package conversation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxScanTokenSize bounds a single JSONL line.
const maxScanTokenSize = 10 * 1024 * 1024 // 10MB

// Parser reads Claude Code JSONL transcripts.
type Parser struct{}

// NewParser creates a new transcript parser.
func NewParser() *Parser {
	return &Parser{}
}

// jsonlEntry is one line of a Claude Code transcript.
type jsonlEntry struct {
	Type    string          `json:"type"`
	IsMeta  bool            `json:"isMeta,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
}

// claudeMessage is the nested message object. Content is either a string or
// a list of content blocks.
type claudeMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ParseResult contains turns and any errors encountered during parsing.
type ParseResult struct {
	Turns      []Turn
	ErrorCount int
	Errors     []ParseError
}

// ParseError records a line that could not be decoded.
type ParseError struct {
	Line  int
	Error string
}

// maxStoredErrors caps ParseResult.Errors; ErrorCount keeps the full tally.
const maxStoredErrors = 10

// ParseJSONL reads r line by line. Malformed lines are counted and skipped
// rather than failing the whole transcript. Only "user" and "assistant"
// entries with text content become turns.
func (p *Parser) ParseJSONL(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{
		Turns:  make([]Turn, 0),
		Errors: make([]ParseError, 0),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxScanTokenSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry jsonlEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			result.addError(lineNum, fmt.Sprintf("JSON parse error: %v", err))
			continue
		}

		var speaker Speaker
		switch entry.Type {
		case "user":
			speaker = SpeakerHuman
		case "assistant":
			speaker = SpeakerOther
		default:
			continue
		}
		if entry.IsMeta {
			continue
		}

		text, err := messageText(entry.Message)
		if err != nil {
			result.addError(lineNum, fmt.Sprintf("message parse error: %v", err))
			continue
		}
		if text = strings.TrimSpace(joinLines.Replace(text)); text == "" {
			continue
		}

		result.Turns = append(result.Turns, Turn{Speaker: speaker, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning transcript: %w", err)
	}

	return result, nil
}

func (r *ParseResult) addError(line int, msg string) {
	r.ErrorCount++
	if len(r.Errors) < maxStoredErrors {
		r.Errors = append(r.Errors, ParseError{Line: line, Error: msg})
	}
}

// joinLines folds a multi-line message into one line the same way the
// plain-text parser joins continuation lines.
var joinLines = strings.NewReplacer("\r\n", " ", "\n", " ")

// messageText extracts the text of a message that is a plain string, a
// message object with string content, or a message object with content
// blocks. Tool use and tool result blocks carry no text and are ignored.
func messageText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var cm claudeMessage
	if err := json.Unmarshal(raw, &cm); err != nil {
		return "", err
	}
	return contentText(cm.Content)
}

func contentText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return "", err
	}

	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " "), nil
}

// ParseJSONL reads a Claude Code JSONL transcript into turns.
func ParseJSONL(r io.Reader) ([]Turn, error) {
	result, err := NewParser().ParseJSONL(r)
	if err != nil {
		return nil, err
	}
	return result.Turns, nil
}
