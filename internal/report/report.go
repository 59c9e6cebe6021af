// Package report persists the aggregated analysis report and renders it
// for terminal, Markdown, and HTML consumers.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

const (
	// Dir is the directory the full report is written into.
	Dir = "analysis_reports"
	// File is the report file name inside Dir.
	File = "full_analysis_report.json"
)

// DefaultPath returns the report location used when no override is given.
func DefaultPath() string {
	return filepath.Join(Dir, File)
}

// Write marshals the report with two-space indentation and writes it to
// path, creating the parent directory first. An existing report at the
// same path is replaced.
func Write(path string, r types.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads a previously written report from path.
func Load(path string) (types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r types.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return r, nil
}
