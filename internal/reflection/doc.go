// Package reflection drives one auto-reflection run.
//
// A run reads the session transcript named by the hook payload, classifies
// the human turns, extracts learning records, and appends the records that
// pass the confidence filter to the project's learnings file. The memory
// directory is then committed when it sits inside a git work tree, and the
// run statistics in the enablement state file are updated.
//
// Steps run strictly in order with no feedback between them:
//
//	parse -> classify -> extract -> filter -> persist -> commit -> stats
//
// Missing preconditions end the run as a no-op. Only a failure to write the
// learnings file is reported as a failed run; commit and statistics errors
// are logged and otherwise ignored.
//
// # Usage
//
//	p, err := reflection.New(cfg, reflection.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	outcome := p.Run(ctx, input)
//
// Run never returns an error and never panics, so callers on the hook path
// can exit 0 unconditionally.
package reflection
