// Package conversation turns session transcripts into attributed turns.
//
// Two transcript shapes are supported:
//   - plain text, where each turn starts with a speaker marker such as
//     "Human:" or "Assistant:" at the beginning of a line
//   - Claude Code JSONL, one JSON object per line with a "type" of
//     "user" or "assistant"
//
// Load picks the right reader for a file. ParseHumanTurns is the entry point
// used by the reflection pipeline: it keeps only what the human said.
package conversation
