// Package logging provides structured logging for the reflection hook.
//
// # Overview
//
// The package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Output on stderr only, so stdout stays free for the hook host
//   - Automatic context field injection (run.id, session.id)
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRunID(ctx, uuid.NewString())
//	ctx = logging.WithSessionID(ctx, input.SessionID)
//	logger.Info(ctx, "learnings persisted", zap.Int("count", n))
//
// # Testing
//
// Use NewTestLogger to capture entries with zaptest/observer:
//
//	logger := logging.NewTestLogger()
//	pipeline.Run(ctx, input)
//	logger.AssertLogged(t, zapcore.WarnLevel, "commit skipped")
package logging
