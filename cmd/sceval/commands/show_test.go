package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YassineDev91/smart-contract-eval/internal/report"
	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// writeReportFile persists a small two-entry report and returns its path.
func writeReportFile(t *testing.T) string {
	t.Helper()
	ast := `{"nodeType":"SourceUnit"}`
	stderr := "ParserError: expected ';'"
	r := types.Report{
		"gpt4/Token": {
			Solc:    types.SolcResult{File: "gpt4/Token.sol", Success: true, Output: &ast},
			Slither: types.SlitherResult{File: "gpt4/Token.sol", Success: true, Output: map[string]any{}},
		},
		"claude3/Vault": {
			Solc: types.SolcResult{File: "claude3/Vault.sol", Success: false, Output: &stderr},
			Slither: types.SlitherResult{
				File: "claude3/Vault.sol", Success: false,
				Output: map[string]any{"results": map[string]any{"detectors": []any{map[string]any{"check": "reentrancy"}}}},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "full_analysis_report.json")
	require.NoError(t, report.Write(path, r))
	return path
}

func TestShowEntry(t *testing.T) {
	resetFlags()
	flagConfig = t.TempDir()
	path := writeReportFile(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"show", "gpt4/Token", "--report", path})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())

	var entry map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, true, entry["solc"]["success"])
	require.Equal(t, "gpt4/Token.sol", entry["solc"]["file"])
}

func TestShowUnknownKey(t *testing.T) {
	resetFlags()
	flagConfig = t.TempDir()
	path := writeReportFile(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"show", "gpt4/Nope", "--report", path})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "gpt4/Nope")
}

func TestShowMissingReport(t *testing.T) {
	resetFlags()
	flagConfig = t.TempDir()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"show", "gpt4/Token", "--report", filepath.Join(t.TempDir(), "nope.json")})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	require.Error(t, rootCmd.Execute())
}
