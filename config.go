package dotty

import (
	"log/slog"

	"github.com/simhayoz/dotty/object"
)

// Reporter receives findings as the checker surfaces them. The default
// logs each finding through the configured slog.Logger.
type Reporter interface {
	Report(*object.Error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(*object.Error)

func (f ReporterFunc) Report(err *object.Error) { f(err) }

// Config holds the shared settings of a Checker.
type Config struct {
	// Logger is used for the checker's own debug output, and by the
	// default reporter. Nil falls back to an error-level handler.
	Logger *slog.Logger

	// Reporter is the diagnostic sink. Nil installs the slog reporter.
	Reporter Reporter

	// MaxIterations caps the per-class fixpoint loop; zero keeps the
	// default. Exceeding the cap is an internal error, not a user
	// diagnostic: termination is a design invariant, the cap converts
	// its violation into a loud failure.
	MaxIterations int
}

// Option mutates the Config during NewChecker.
type Option func(*Config)

// WithLogger sets the shared logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithReporter sets the diagnostic sink.
func WithReporter(r Reporter) Option {
	return func(c *Config) { c.Reporter = r }
}

// WithMaxIterations overrides the defensive iteration cap.
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

func newConfig(options ...Option) *Config {
	cfg := &Config{}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.Reporter == nil {
		logger := cfg.Logger
		if logger == nil {
			logger = slog.Default()
		}
		cfg.Reporter = ReporterFunc(func(err *object.Error) {
			logger.Error("init check", "kind", string(err.Kind), "message", err.Message, "path", err.CallPath())
		})
	}
	return cfg
}
