package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/jsonedit/pkg/editor"
)

// options holds the internal configuration for the editor.
type options struct {
	logger *slog.Logger
	stdout io.Writer
	store  editor.Store
	config Config
}

// Option defines a functional option for configuring the editor.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: DefaultConfig(),
	}
}

// WithLogger sets the logger for the editor and its store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStdout sets where the summary of each run is printed.
// Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithStore allows injecting a custom storage adapter (e.g. in-memory for tests).
// If provided, the default filesystem store is skipped and formatting
// settings from the config are ignored.
func WithStore(store editor.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithConfig replaces the whole configuration, typically one read by LoadConfig.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithIndent sets the number of spaces per level in written files.
// Negative values write compact JSON.
func WithIndent(spaces int) Option {
	return func(o *options) {
		o.config.Indent = spaces
	}
}

// WithJSONC accepts comments and trailing commas in .json inputs.
func WithJSONC(enabled bool) Option {
	return func(o *options) {
		o.config.JSONC = enabled
	}
}
