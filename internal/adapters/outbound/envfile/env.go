// Package envfile supplies the environment seen by a run: the process
// environment overlaid with the project's optional .env file.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const fileName = ".env"

// Source implements domain.EnvSource.
type Source struct {
	// Base returns the inherited environment; defaults to os.Environ.
	Base func() []string
}

func New() *Source {
	return &Source{Base: os.Environ}
}

// Environ returns the inherited environment with projectPath/.env applied
// on top. A missing .env is not an error.
func (s *Source) Environ(projectPath string) (map[string]string, error) {
	env := make(map[string]string)
	base := s.Base
	if base == nil {
		base = os.Environ
	}
	for _, kv := range base() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}

	overlay, err := godotenv.Read(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return env, nil
		}
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	for k, v := range overlay {
		env[k] = v
	}
	return env, nil
}
