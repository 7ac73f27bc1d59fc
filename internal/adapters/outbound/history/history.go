package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

const (
	historyFile = ".jdepscheck/history/runs.json"

	// DefaultLimit is how many entries are kept; older ones are dropped first.
	DefaultLimit = 500
)

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct {
	Limit int
}

func New() *FileHistory {
	return &FileHistory{Limit: DefaultLimit}
}

// Save appends entry and trims the file to the newest Limit entries.
func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.Limit > 0 && len(entries) > h.Limit {
		entries = entries[len(entries)-h.Limit:]
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load returns the stored entries, oldest first. No file means no runs.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding run history: %w", err)
	}

	return entries, nil
}
