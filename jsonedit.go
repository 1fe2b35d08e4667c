package jsonedit

import (
	"io"
	"log/slog"

	"github.com/aretw0/jsonedit/internal/platform"
	"github.com/aretw0/jsonedit/pkg/editor"
)

// Version of the tool.
const Version = "0.1.0"

// --- Types ---

// Editor applies a Plan to input files.
type Editor = editor.Editor

// Plan lists the steps of one invocation.
type Plan = editor.Plan

// Config holds the settings that can be kept in a YAML file.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring the editor.
type Option = platform.Option

// WithLogger sets the logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStdout sets where run summaries are printed.
func WithStdout(w io.Writer) Option {
	return platform.WithStdout(w)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store editor.Store) Option {
	return platform.WithStore(store)
}

// WithConfig applies a configuration loaded with LoadConfig.
func WithConfig(cfg Config) Option {
	return platform.WithConfig(cfg)
}

// WithIndent sets the number of spaces per level in written files.
func WithIndent(spaces int) Option {
	return platform.WithIndent(spaces)
}

// WithJSONC accepts comments and trailing commas in .json inputs.
func WithJSONC(enabled bool) Option {
	return platform.WithJSONC(enabled)
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// --- Factory ---

// New creates an Editor backed by the local filesystem.
func New(opts ...Option) *Editor {
	return platform.New(opts...)
}
