package state

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

func sampleRun(id string) types.RunSummary {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return types.RunSummary{
		ID:            id,
		Root:          "./contracts-evaluation",
		ReportPath:    "analysis_reports/full_analysis_report.json",
		Targets:       12,
		SolcPassed:    10,
		SlitherPassed: 7,
		StartedAt:     started,
		FinishedAt:    started.Add(90 * time.Second),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.json")

	s := New(path)
	s.Append(sampleRun("run-1"))
	s.Append(sampleRun("run-2"))

	require.NoError(t, s.Save())

	s2 := New(path)
	require.NoError(t, s2.Load())

	assert.Equal(t, 2, s2.Len())
	recent := s2.Recent(0)
	require.Len(t, recent, 2)
	// Newest first
	assert.Equal(t, "run-2", recent[0].ID)
	assert.Equal(t, "run-1", recent[1].ID)
	assert.Equal(t, 12, recent[0].Targets)
	assert.Equal(t, 10, recent[0].SolcPassed)
}

func TestStoreRecentLimit(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "runs.json"))
	for i := 0; i < 5; i++ {
		s.Append(sampleRun(fmt.Sprintf("run-%d", i)))
	}

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "run-4", recent[0].ID)
	assert.Equal(t, "run-3", recent[1].ID)
}

func TestStoreCapsOldRuns(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "runs.json"))
	for i := 0; i < maxRuns+10; i++ {
		s.Append(sampleRun(fmt.Sprintf("run-%d", i)))
	}

	assert.Equal(t, maxRuns, s.Len())
	// The oldest entries were dropped
	recent := s.Recent(0)
	assert.Equal(t, fmt.Sprintf("run-%d", maxRuns+9), recent[0].ID)
	assert.Equal(t, "run-10", recent[len(recent)-1].ID)
}

func TestStoreLoadNonexistent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nonexistent.json"))
	// Should not error on missing file
	assert.NoError(t, s.Load())
	assert.Zero(t, s.Len())
}

func TestStoreCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "deep", "runs.json")

	s := New(path)
	s.Append(sampleRun("run-1"))
	require.NoError(t, s.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreRejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevated rights on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real.json")
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"runs":[]}`), 0600))
	require.NoError(t, os.Symlink(target, link))

	s := New(link)
	err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")

	assert.Error(t, s.Save())
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	assert.Contains(t, p, "runs.json")
	assert.Contains(t, p, ".sceval")
}
