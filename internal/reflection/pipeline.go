package reflection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/autoreflect/internal/config"
	"github.com/fyrsmithlabs/autoreflect/internal/conversation"
	"github.com/fyrsmithlabs/autoreflect/internal/extraction"
	"github.com/fyrsmithlabs/autoreflect/internal/hooks"
	"github.com/fyrsmithlabs/autoreflect/internal/learning"
	"github.com/fyrsmithlabs/autoreflect/internal/logging"
	"github.com/fyrsmithlabs/autoreflect/internal/memory"
	"github.com/fyrsmithlabs/autoreflect/internal/metrics"
	"github.com/fyrsmithlabs/autoreflect/internal/secrets"
	"github.com/fyrsmithlabs/autoreflect/internal/state"
	"github.com/fyrsmithlabs/autoreflect/internal/vcs"
	"github.com/go-git/go-git/v5/plumbing"
)

// Committer commits a directory of the project repository.
type Committer interface {
	CommitDir(projectDir, dir, message string) (plumbing.Hash, error)
}

// Pipeline runs reflection for one project configuration.
type Pipeline struct {
	cfg           *config.Config
	classifier    *extraction.Classifier
	minConfidence learning.Confidence
	committer     Committer
	logger        *logging.Logger
	stderr        io.Writer
	now           func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Without it the logger stored in the run
// context is used.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithStderr sets where the capture notice is written.
func WithStderr(w io.Writer) Option {
	return func(p *Pipeline) { p.stderr = w }
}

// WithClock overrides the time used for entry dates and statistics.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithCommitter replaces the go-git committer.
func WithCommitter(c Committer) Option {
	return func(p *Pipeline) { p.committer = c }
}

// New builds a pipeline from cfg. Extra classification rules are appended to
// the defaults; an invalid rule or confidence grade is an error.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	rules := extraction.DefaultRules()
	for _, rc := range cfg.Signals.ExtraRules {
		cat, err := extraction.ParseCategory(rc.Category)
		if err != nil {
			return nil, fmt.Errorf("signals.extra_rules %q: %w", rc.Name, err)
		}
		rules = append(rules, extraction.Rule{Name: rc.Name, Category: cat, Pattern: rc.Pattern})
	}
	classifier, err := extraction.NewClassifier(rules)
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}

	minConf, err := learning.ParseConfidence(cfg.Persist.MinConfidence)
	if err != nil {
		return nil, fmt.Errorf("persist.min_confidence: %w", err)
	}

	p := &Pipeline{
		cfg:           cfg,
		classifier:    classifier,
		minConfidence: minConf,
		committer:     vcs.NewCommitter(),
		stderr:        os.Stderr,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes one reflection for the hook payload in.
func (p *Pipeline) Run(ctx context.Context, in hooks.Input) (out Outcome) {
	start := p.now()
	ctx = logging.WithSessionID(ctx, in.SessionID)
	logger := p.loggerFor(ctx)
	m := metrics.New()
	var projectDir string

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "reflection panicked", zap.Any("panic", r), zap.Stack("stack"))
			out = failed(ReasonPanic)
		}
		p.finish(ctx, logger, m, out, projectDir, start)
	}()

	projectDir, err := p.cfg.ResolveProjectDir(in.Cwd)
	if err != nil {
		logger.Error(ctx, "resolving project directory", zap.Error(err))
		return failed(ReasonProjectDir)
	}
	log := logger.With(zap.String("project_dir", projectDir))

	states := state.NewStore(p.cfg.StatePath(projectDir))
	st, err := states.Load()
	if err != nil {
		log.Warn(ctx, "treating unreadable state as disabled", zap.Error(err))
		return noop(ReasonDisabled)
	}
	m.Reflections.Set(float64(st.TotalReflections))
	if !st.Enabled {
		return noop(ReasonDisabled)
	}

	if in.TranscriptPath == "" {
		return noop(ReasonNoTranscript)
	}
	turns, err := conversation.Load(in.TranscriptPath)
	if err != nil {
		log.Debug(ctx, "transcript unavailable", zap.String("path", in.TranscriptPath), zap.Error(err))
		return noop(ReasonNoTranscript)
	}

	a := p.Analyze(turns)
	observe(m, a)
	for _, sig := range a.Matches {
		log.Trace(ctx, "turn classified",
			zap.String("category", string(sig.Category)),
			zap.String("rule", sig.Rule))
	}
	log.Debug(ctx, "transcript analyzed",
		zap.Int("human_turns", len(a.HumanTurns)),
		zap.Int("signals", a.Signals.Total()),
		zap.Int("records", len(a.Records)),
		zap.Int("kept", len(a.Kept)))

	switch {
	case len(a.HumanTurns) == 0:
		return noop(ReasonNoHumanTurns)
	case a.Signals.Empty():
		return noop(ReasonNoSignals)
	case len(a.Kept) == 0:
		return noop(ReasonNoHighConfidence)
	}

	store, reason, err := p.openStore(projectDir)
	if err != nil {
		log.Error(ctx, "opening learnings store", zap.Error(err))
		return failed(reason)
	}
	res, err := store.Append(a.Kept)
	if err != nil {
		log.Error(ctx, "appending learnings", zap.String("path", store.Path()), zap.Error(err))
		return failed(ReasonStore)
	}
	m.Persisted.Set(float64(res.Written))
	m.Redactions.Set(float64(res.Redactions))
	if res.Redactions > 0 {
		log.Info(ctx, "redacted secrets from learnings", zap.Int("count", res.Redactions))
	}

	out = Outcome{Status: StatusPersisted, Persisted: res.Written}
	if p.cfg.Commit.Enabled {
		out.Committed = p.commit(ctx, log, projectDir, store.Dir(), res.Records)
	}

	updated, err := states.RecordReflection(res.Written, p.now())
	if err != nil {
		log.Warn(ctx, "updating reflection statistics", zap.Error(err))
	} else {
		m.Reflections.Set(float64(updated.TotalReflections))
	}

	fmt.Fprintf(p.stderr, "\n[reflect] Auto-captured %d learning(s)\n", res.Written)
	return out
}

func (p *Pipeline) openStore(projectDir string) (*memory.Store, string, error) {
	path, err := p.cfg.StorePath(projectDir)
	if err != nil {
		return nil, ReasonStore, err
	}
	opts := []memory.Option{memory.WithClock(p.now)}
	if p.cfg.Redaction.Enabled {
		var allowlists []string
		if al := p.cfg.AllowlistPath(projectDir); al != "" {
			allowlists = append(allowlists, al)
		}
		r, err := secrets.NewRedactor(allowlists...)
		if err != nil {
			return nil, ReasonRedactor, err
		}
		opts = append(opts, memory.WithRedactor(r))
	}
	return memory.NewStore(path, opts...), "", nil
}

// commit returns the short hash of the new commit, or "" when none was made.
func (p *Pipeline) commit(ctx context.Context, log *logging.Logger, projectDir, dir string, records []learning.Record) string {
	msg := vcs.BuildMessage(records, p.cfg.Commit.MaxSummaries)
	hash, err := p.committer.CommitDir(projectDir, dir, msg)
	switch {
	case err == nil:
		short := hash.String()[:7]
		log.Info(ctx, "committed learnings", zap.String("commit", short))
		return short
	case errors.Is(err, vcs.ErrNotRepository),
		errors.Is(err, vcs.ErrOutsideRepository),
		errors.Is(err, vcs.ErrNothingStaged):
		log.Debug(ctx, "skipping commit", zap.Error(err))
	default:
		log.Warn(ctx, "commit failed", zap.Error(err))
	}
	return ""
}

func (p *Pipeline) loggerFor(ctx context.Context) *logging.Logger {
	if p.logger != nil {
		return p.logger
	}
	return logging.FromContext(ctx)
}

func (p *Pipeline) finish(ctx context.Context, logger *logging.Logger, m *metrics.Metrics, out Outcome, projectDir string, start time.Time) {
	logger.Info(ctx, "reflection finished",
		zap.String("status", string(out.Status)),
		zap.String("reason", out.Reason),
		zap.Int("persisted", out.Persisted))

	// No-op runs write nothing, metrics included.
	path := p.cfg.Metrics.Textfile
	if path == "" || out.Status == StatusNoop {
		return
	}
	if !filepath.IsAbs(path) && projectDir != "" {
		path = filepath.Join(projectDir, path)
	}
	m.Outcome.WithLabelValues(string(out.Status), out.Reason).Set(1)
	m.Finish(start, p.now())
	if err := m.WriteTextfile(path); err != nil {
		logger.Warn(ctx, "exporting metrics", zap.Error(err))
	}
}

func observe(m *metrics.Metrics, a Analysis) {
	m.Turns.Set(float64(len(a.HumanTurns)))
	m.Signals.WithLabelValues(string(extraction.CategoryCorrection)).Set(float64(len(a.Signals.Corrections)))
	m.Signals.WithLabelValues(string(extraction.CategoryPreference)).Set(float64(len(a.Signals.Preferences)))
	m.Signals.WithLabelValues(string(extraction.CategoryApproval)).Set(float64(len(a.Signals.Approvals)))
	for c, n := range learning.Tally(a.Records) {
		m.Records.WithLabelValues(string(c)).Set(float64(n))
	}
}
