package sceval_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	sceval "github.com/YassineDev91/smart-contract-eval"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

// writeShim installs a fake tool script named bin into dir.
func writeShim(t *testing.T, dir, bin, body string) {
	t.Helper()
	path := filepath.Join(dir, bin)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
}

func useShims(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}

func writeContract(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	src := "pragma solidity ^0.8.0;\ncontract C {}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyze(t *testing.T) {
	skipWithoutShell(t)

	root := t.TempDir()
	writeContract(t, root, "gpt4/Token.sol")
	writeContract(t, root, "claude3/Vault.sol")

	bin := t.TempDir()
	writeShim(t, bin, "solc", `echo '{"nodeType":"SourceUnit"}'`)
	writeShim(t, bin, "slither", `exit 0`)
	useShims(t, bin)

	var progress bytes.Buffer
	report, err := sceval.Analyze(context.Background(), root, sceval.WithProgress(&progress))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("report has %d entries, want 2", len(report))
	}

	token, ok := report["gpt4/Token"]
	if !ok {
		t.Fatal("missing gpt4/Token entry")
	}
	if !token.Solc.Success {
		t.Errorf("solc success = false, want true (error: %s)", token.Solc.Error)
	}
	if token.Solc.Output == nil || *token.Solc.Output == "" {
		t.Error("expected solc output to be captured")
	}
	if !token.Slither.Success {
		t.Errorf("slither success = false, want true (error: %s)", token.Slither.Error)
	}

	want := "Analyzing claude3/Vault...\nAnalyzing gpt4/Token...\n"
	if progress.String() != want {
		t.Errorf("progress = %q, want %q", progress.String(), want)
	}
}

func TestAnalyzeRecordsToolFailures(t *testing.T) {
	skipWithoutShell(t)

	root := t.TempDir()
	writeContract(t, root, "gpt4/Broken.sol")

	bin := t.TempDir()
	writeShim(t, bin, "solc", `echo 'ParserError: expected ;' >&2; exit 1`)
	writeShim(t, bin, "slither", `echo '{"success": false, "results": {}}'; exit 255`)
	useShims(t, bin)

	report, err := sceval.Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	broken := report["gpt4/Broken"]
	if broken.Solc.Success {
		t.Error("solc success = true for failing compile")
	}
	if broken.Solc.Output == nil {
		t.Fatal("expected stderr captured as solc output")
	}
	if got := *broken.Solc.Output; got == "" {
		t.Error("solc output empty, want stderr text")
	}
	if broken.Slither.Success {
		t.Error("slither success = true for nonzero exit")
	}
	if broken.Slither.Output == nil {
		t.Error("expected slither JSON payload to be kept")
	}
}

func TestAnalyzeMissingRoot(t *testing.T) {
	report, err := sceval.Analyze(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("report has %d entries for missing root, want 0", len(report))
	}
}

func TestTargets(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "gpt4/Token.sol")
	writeContract(t, root, "claude3/Vault.sol")
	writeContract(t, root, "Stray.sol") // no model directory

	targets, err := sceval.Targets(root)
	if err != nil {
		t.Fatalf("Targets failed: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].Key() != "claude3/Vault" || targets[1].Key() != "gpt4/Token" {
		t.Errorf("unexpected keys: %s, %s", targets[0].Key(), targets[1].Key())
	}
}

func TestTargetsIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "gpt4/Token.sol")
	writeContract(t, root, "gpt4/Token.t.sol")

	targets, err := sceval.Targets(root, sceval.WithIgnorePatterns([]string{"*.t.sol"}))
	if err != nil {
		t.Fatalf("Targets failed: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Key() != "gpt4/Token" {
		t.Errorf("key = %s, want gpt4/Token", targets[0].Key())
	}
}

func TestWriteAndLoadReport(t *testing.T) {
	out := "{}"
	r := sceval.Report{
		"gpt4/Token": {
			Solc: sceval.SolcResult{File: "gpt4/Token.sol", Success: true, Output: &out},
			Slither: sceval.SlitherResult{
				File: "gpt4/Token.sol", Success: true, Output: map[string]any{},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "analysis_reports", "full_analysis_report.json")
	if err := sceval.WriteReport(path, r); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	loaded, err := sceval.LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d entries, want 1", len(loaded))
	}
	if !loaded["gpt4/Token"].Solc.Success {
		t.Error("round trip lost solc success flag")
	}
}

func TestDefaultReportPath(t *testing.T) {
	want := filepath.Join("analysis_reports", "full_analysis_report.json")
	if got := sceval.DefaultReportPath(); got != want {
		t.Errorf("DefaultReportPath = %q, want %q", got, want)
	}
}
