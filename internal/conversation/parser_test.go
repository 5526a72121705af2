package conversation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSONL = `{"type":"summary","summary":"Tabs discussion"}
{"type":"user","message":{"role":"user","content":"no, that's wrong, use tabs instead"},"uuid":"u1"}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"Switching to tabs."},{"type":"tool_use","id":"t1","name":"Edit","input":{"file_path":"main.go"}}]},"uuid":"a1"}
{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1","content":"ok"}]},"uuid":"u2"}
{"type":"user","isMeta":true,"message":{"role":"user","content":"<local-command-stdout></local-command-stdout>"},"uuid":"u3"}
{"type":"user","message":{"role":"user","content":[{"type":"text","text":"I prefer snake_case"},{"type":"text","text":"for variables"}]},"uuid":"u4"}
{"type":"user","message":"plain string message","uuid":"u5"}
`

func TestParser_ParseJSONL(t *testing.T) {
	result, err := NewParser().ParseJSONL(strings.NewReader(sampleJSONL))
	require.NoError(t, err)

	assert.Zero(t, result.ErrorCount)
	assert.Equal(t, []Turn{
		{Speaker: SpeakerHuman, Text: "no, that's wrong, use tabs instead"},
		{Speaker: SpeakerOther, Text: "Switching to tabs."},
		{Speaker: SpeakerHuman, Text: "I prefer snake_case for variables"},
		{Speaker: SpeakerHuman, Text: "plain string message"},
	}, result.Turns)
}

func TestParser_ParseJSONL_MultiLineMessages(t *testing.T) {
	input := `{"type":"user","message":{"role":"user","content":"the field should be a map\nnot a slice"}}` + "\n" +
		`{"type":"user","message":{"role":"user","content":"  first line\r\nsecond line\n"}}` + "\n" +
		`{"type":"user","message":{"role":"user","content":[{"type":"text","text":"one\ntwo"},{"type":"text","text":"three"}]}}` + "\n"

	turns, err := ParseJSONL(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"the field should be a map not a slice",
		"first line second line",
		"one two three",
	}, HumanTexts(turns))

	// Same turn text as the plain-text form of the first message.
	assert.Equal(t, ParseHumanTurns("Human: the field should be a map\nnot a slice\n")[0], turns[0].Text)
}

func TestParser_ParseJSONL_MalformedLines(t *testing.T) {
	input := "not valid json\n" +
		`{"type":"user","message":{"role":"user","content":42}}` + "\n" +
		`{"type":"user","message":{"role":"user","content":"kept"}}` + "\n"

	result, err := NewParser().ParseJSONL(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, result.ErrorCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Error, "JSON parse error")
	assert.Equal(t, 2, result.Errors[1].Line)
	assert.Contains(t, result.Errors[1].Error, "message parse error")

	require.Len(t, result.Turns, 1)
	assert.Equal(t, "kept", result.Turns[0].Text)
}

func TestParser_ParseJSONL_ErrorCap(t *testing.T) {
	input := strings.Repeat("{broken\n", maxStoredErrors+5)

	result, err := NewParser().ParseJSONL(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, maxStoredErrors+5, result.ErrorCount)
	assert.Len(t, result.Errors, maxStoredErrors)
	assert.Empty(t, result.Turns)
}

func TestParseJSONL_Empty(t *testing.T) {
	turns, err := ParseJSONL(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    Format
	}{
		{"jsonl extension", "/tmp/session.jsonl", "Human: hi", FormatJSONL},
		{"upper-case extension", "/tmp/session.JSONL", "", FormatJSONL},
		{"json object first line", "/tmp/transcript", "\n  {\"type\":\"user\"}\n", FormatJSONL},
		{"marker first line", "/tmp/transcript.txt", "Human: hi\n", FormatText},
		{"empty", "/tmp/transcript.txt", "", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path, []byte(tt.content)))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "transcript.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("Human: looks good, thanks!\n"), 0o644))

	turns, err := Load(textPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"looks good, thanks!"}, HumanTexts(turns))

	jsonlPath := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(jsonlPath, []byte(sampleJSONL), 0o644))

	turns, err = Load(jsonlPath)
	require.NoError(t, err)
	assert.Len(t, HumanTexts(turns), 3)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
