package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YassineDev91/smart-contract-eval/internal/runner"
	"github.com/stretchr/testify/require"
)

func writeContract(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("pragma solidity ^0.8.0;\ncontract C {}\n"), 0644))
}

func TestTargetKey(t *testing.T) {
	target := &runner.Target{Model: "gpt4", Contract: "Token"}
	require.Equal(t, "gpt4/Token", target.Key())
}

func TestTargetDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeContract(t, dir, "gpt4/Token.sol")
	writeContract(t, dir, "claude3/Vault.sol")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gpt4", "notes.md"), []byte("notes"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref"), 0644))

	td := &runner.TargetDiscovery{}
	targets, err := td.Discover(dir)
	require.NoError(t, err)

	require.Len(t, targets, 2)
	// Walk order is lexical, so claude3 comes first
	require.Equal(t, "claude3/Vault.sol", targets[0].RelPath)
	require.Equal(t, "claude3", targets[0].Model)
	require.Equal(t, "Vault", targets[0].Contract)
	require.Equal(t, "gpt4/Token.sol", targets[1].RelPath)
	require.Equal(t, "gpt4/Token", targets[1].Key())
}

func TestTargetDiscoverySkipsRootLevelFiles(t *testing.T) {
	dir := t.TempDir()
	writeContract(t, dir, "Orphan.sol")
	writeContract(t, dir, "gpt4/Token.sol")

	td := &runner.TargetDiscovery{}
	targets, err := td.Discover(dir)
	require.NoError(t, err)

	// Orphan.sol has no model directory above it
	require.Len(t, targets, 1)
	require.Equal(t, "gpt4/Token.sol", targets[0].RelPath)
}

func TestTargetDiscoveryNestedContract(t *testing.T) {
	dir := t.TempDir()
	writeContract(t, dir, "gpt4/defi/Lending.sol")

	td := &runner.TargetDiscovery{}
	targets, err := td.Discover(dir)
	require.NoError(t, err)

	// The model is always the first directory under the root
	require.Len(t, targets, 1)
	require.Equal(t, "gpt4", targets[0].Model)
	require.Equal(t, "Lending", targets[0].Contract)
	require.Equal(t, "gpt4/Lending", targets[0].Key())
}

func TestScevalIgnore(t *testing.T) {
	dir := t.TempDir()
	writeContract(t, dir, "gpt4/Token.sol")
	writeContract(t, dir, "gpt4/Token.t.sol")
	writeContract(t, dir, "legacy/gpt3/Old.sol")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scevalignore"), []byte("# fixtures\n*.t.sol\nlegacy/**\n"), 0644))

	td := &runner.TargetDiscovery{}
	targets, err := td.Discover(dir)
	require.NoError(t, err)

	paths := make(map[string]bool)
	for _, target := range targets {
		paths[target.RelPath] = true
	}
	require.True(t, paths["gpt4/Token.sol"])
	require.False(t, paths["gpt4/Token.t.sol"])
	require.False(t, paths["legacy/gpt3/Old.sol"])
}

func TestScevalIgnoreDirectoryPattern(t *testing.T) {
	dir := t.TempDir()
	writeContract(t, dir, "gpt4/Token.sol")
	writeContract(t, dir, "gpt4/lib/ERC20.sol")
	writeContract(t, dir, "claude3/cache/Tmp.sol")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scevalignore"), []byte("lib/\ncache/\n"), 0644))

	td := &runner.TargetDiscovery{}
	targets, err := td.Discover(dir)
	require.NoError(t, err)

	// Directory patterns apply at any depth below the model dirs.
	require.Len(t, targets, 1)
	require.Equal(t, "gpt4/Token.sol", targets[0].RelPath)
}
