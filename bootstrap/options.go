package bootstrap

import (
	"io"
	"os"
	"time"

	"github.com/kbukum/assemblyai-mcp/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	shutdownTimeout *time.Duration
	exitGrace       *time.Duration
	summaryOut      io.Writer
	signals         []os.Signal
	exit            func(int)
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithShutdownTimeout overrides server.shutdown_timeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.shutdownTimeout = &d
	}
}

// WithExitGrace overrides server.exit_grace.
func WithExitGrace(d time.Duration) Option {
	return func(o *appOptions) {
		o.exitGrace = &d
	}
}

// WithSummaryOutput sets where the startup summary is written. Defaults to
// stderr; io.Discard silences it.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}

// WithSignals replaces the shutdown signals (SIGINT and SIGTERM).
func WithSignals(sigs ...os.Signal) Option {
	return func(o *appOptions) {
		o.signals = sigs
	}
}

// WithExitFunc replaces os.Exit in the fault handler.
func WithExitFunc(fn func(int)) Option {
	return func(o *appOptions) {
		o.exit = fn
	}
}
