package fs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/jsonedit/pkg/core"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoMatch is returned when a glob pattern matches no files.
var ErrNoMatch = errors.New("no files match pattern")

// Config holds the configuration for the filesystem store.
type Config struct {
	Indent int  // spaces per level; 0 selects DefaultIndent, negative writes compact JSON
	JSONC  bool // accept comments and trailing commas in .json files
	Logger *slog.Logger
}

// Store reads and writes whole documents on the local filesystem.
// The format is chosen by file extension; unknown extensions are JSON.
type Store struct {
	config      Config
	logger      *slog.Logger
	serializers map[string]Serializer
}

// NewStore creates a store with the default serializers.
func NewStore(config Config) *Store {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		config:      config,
		logger:      logger,
		serializers: DefaultSerializers(config.Indent, config.JSONC),
	}
}

// RegisterSerializer adds or replaces the serializer for an extension
// (including the dot, e.g. ".json").
func (s *Store) RegisterSerializer(ext string, serializer Serializer) {
	s.serializers[strings.ToLower(ext)] = serializer
}

// SerializerFor returns the serializer used for path.
func (s *Store) SerializerFor(path string) Serializer {
	if ser, ok := s.serializers[strings.ToLower(filepath.Ext(path))]; ok {
		return ser
	}
	return s.serializers[".json"]
}

// Read loads and decodes any value from path.
func (s *Store) Read(path string) (core.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Value{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	v, err := s.SerializerFor(path).Decode(data)
	if err != nil {
		return core.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug("read file", "path", path, "bytes", len(data))
	return v, nil
}

// LoadDocument reads path and checks it holds an array of objects.
func (s *Store) LoadDocument(path string) (core.Document, error) {
	v, err := s.Read(path)
	if err != nil {
		return nil, err
	}
	doc, err := core.DocumentFromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadIDs reads a flat array of ids from path.
func (s *Store) LoadIDs(path string) (*core.IDSet, error) {
	v, err := s.Read(path)
	if err != nil {
		return nil, err
	}
	ids, err := core.IDSetFromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ids, nil
}

// Encode renders v in the format of path without writing it.
func (s *Store) Encode(path string, v core.Value) ([]byte, error) {
	data, err := s.SerializerFor(path).Encode(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the content of path with v. An existing file keeps its
// permissions.
func (s *Store) Write(path string, v core.Value) error {
	data, err := s.Encode(path, v)
	if err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := writeFileAtomic(path, data, perm); err != nil {
		return err
	}
	s.logger.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}

// Expand resolves a path that may contain glob patterns (including "**").
// A path without pattern characters is returned as is, so that reading it
// reports a missing file normally. Matches are sorted.
func Expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// SamePath reports whether a and b name the same file.
func SamePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	if errA != nil || errB != nil {
		absA, errA := filepath.Abs(a)
		absB, errB := filepath.Abs(b)
		return errA == nil && errB == nil && absA == absB
	}
	return os.SameFile(ia, ib)
}
