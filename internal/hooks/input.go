package hooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxInputSize bounds the stdin payload.
const maxInputSize = 1024 * 1024 // 1MB

// ErrEmptyInput indicates stdin carried no payload.
var ErrEmptyInput = errors.New("empty hook input")

// Input is the hook payload.
type Input struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	Cwd            string `json:"cwd"`
	PermissionMode string `json:"permission_mode"`
	HookEventName  string `json:"hook_event_name"`
}

// Decode reads one payload from r. Unknown fields are ignored.
func Decode(r io.Reader) (Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return Input{}, fmt.Errorf("reading hook input: %w", err)
	}
	if len(data) > maxInputSize {
		return Input{}, fmt.Errorf("hook input too large: more than %d bytes", maxInputSize)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Input{}, ErrEmptyInput
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("parsing hook input: %w", err)
	}
	return in, nil
}
