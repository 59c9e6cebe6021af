package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoctorAllChecksPass(t *testing.T) {
	skipWithoutShell(t)
	resetFlags()
	flagConfig = t.TempDir()
	installShims(t, `echo 'solc, the commandline interface Version: 0.8.24'`, `echo 'slither 0.10.0'`)

	root := t.TempDir()
	writeContract(t, root, "gpt4/Token.sol")
	reportPath := filepath.Join(t.TempDir(), "reports", "report.json")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"doctor", root, "--report", reportPath, "--no-color"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	require.Contains(t, out, "0.8.24")
	require.Contains(t, out, "(1 contracts)")
	require.Contains(t, out, "no config file (defaults apply)")
	require.Contains(t, out, "Ready to run")
}

func TestDoctorMissingTools(t *testing.T) {
	skipWithoutShell(t)
	resetFlags()
	flagConfig = t.TempDir()
	t.Setenv("PATH", t.TempDir())

	root := t.TempDir()
	writeContract(t, root, "gpt4/Token.sol")
	reportPath := filepath.Join(t.TempDir(), "reports", "report.json")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"doctor", root, "--report", reportPath, "--no-color"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "problems found")
	require.Contains(t, buf.String(), "not found on PATH")
}

func TestDoctorMissingRoot(t *testing.T) {
	skipWithoutShell(t)
	resetFlags()
	flagConfig = t.TempDir()
	installShims(t, `echo solc`, `echo slither`)

	missing := filepath.Join(t.TempDir(), "nope")
	reportPath := filepath.Join(t.TempDir(), "reports", "report.json")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"doctor", missing, "--report", reportPath, "--no-color"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, buf.String(), "is not a directory")
}
