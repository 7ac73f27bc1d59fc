package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jdepscheck/jdepscheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file.
const FileName = ".jdepscheck.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .jdepscheck.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .jdepscheck.yaml from projectPath.
// Returns DefaultConfig if the file does not exist or is empty.
func (l *YAMLLoader) Load(projectPath string) (domain.AnalysisConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.AnalysisConfig{}, err
	}

	var cfg domain.AnalysisConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.DefaultConfig(), nil
		}
		return domain.AnalysisConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate before defaulting so typos in the user's input surface as-is.
	if err := cfg.Validate(); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg.WithDefaults(), nil
}
