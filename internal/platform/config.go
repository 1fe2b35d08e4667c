package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileNames are looked up, in order, in the working directory.
var ConfigFileNames = []string{".jsonedit.yaml", ".jsonedit.yml"}

// Config holds the settings that can be kept in a YAML file.
type Config struct {
	// Indent is the number of spaces per level in written files (negative: compact).
	Indent int `yaml:"indent"`
	// JSONC accepts comments and trailing commas in .json inputs.
	JSONC bool `yaml:"jsonc"`
	// DryRun prints patches instead of writing files.
	DryRun bool `yaml:"dry_run"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{Indent: 2}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their default; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig returns the first config file present in dir.
func FindConfig(dir string) (string, bool) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
