package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// Store is a file-based implementation of domain.ReportStore. It keeps the
// last report of each goal.
type Store struct{}

// New creates a new file-based report store.
func New() *Store {
	return &Store{}
}

// Load reads the last report for goal. Returns (nil, nil) if none exists.
func (s *Store) Load(projectPath string, goal domain.Goal) (*domain.Report, error) {
	data, err := os.ReadFile(reportPath(projectPath, goal))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding %s report: %w", goal, err)
	}
	return &report, nil
}

// Save writes a report to disk, replacing the previous one for its goal.
func (s *Store) Save(report *domain.Report) error {
	if err := os.MkdirAll(reportDir(report.ProjectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(reportPath(report.ProjectPath, report.Goal), data, 0644)
}

func reportDir(projectPath string) string {
	return filepath.Join(projectPath, ".jdepscheck", "reports")
}

func reportPath(projectPath string, goal domain.Goal) string {
	return filepath.Join(reportDir(projectPath), string(goal)+".json")
}
