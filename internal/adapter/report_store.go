package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

// ReportStore persists the summary of a run.
type ReportStore interface {
	SaveSummary(path m.Path, summary m.Summary) error
	LoadSummary(path m.Path) (m.Summary, error)
}

// YAMLReportStore stores summaries as YAML documents.
type YAMLReportStore struct{}

// NewReportStore creates a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveSummary writes the summary to path, replacing any previous report.
func (s *YAMLReportStore) SaveSummary(path m.Path, summary m.Summary) error {
	content, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(string(path), content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// LoadSummary reads a summary written by SaveSummary.
func (s *YAMLReportStore) LoadSummary(path m.Path) (m.Summary, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Summary{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var summary m.Summary
	if err := yaml.Unmarshal(content, &summary); err != nil {
		return m.Summary{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return summary, nil
}
