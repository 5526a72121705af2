// Package hooks decodes the JSON payload a Claude Code hook receives on stdin.
//
// The host writes a single object such as:
//
//	{
//	  "session_id": "abc123",
//	  "transcript_path": "/home/me/.claude/projects/x/abc123.jsonl",
//	  "cwd": "/home/me/src/x",
//	  "permission_mode": "default",
//	  "hook_event_name": "Stop"
//	}
//
// Only transcript_path drives the reflection pipeline; the other fields are
// carried for logging and project resolution.
package hooks
