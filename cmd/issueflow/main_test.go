package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) (dataDir, output string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	output = filepath.Join(dir, "homelab", "smartsheets-issue-monitor-flow.json")
	t.Setenv("ISSUEFLOW_DATA_DIR", dataDir)
	t.Setenv("ISSUEFLOW_OUTPUT", output)
	t.Setenv("ISSUEFLOW_LOG_LEVEL", "error")
	return dataDir, output
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_GeneratesWithNoArguments(t *testing.T) {
	_, output := testEnv(t)

	out, err := execute(t)
	require.NoError(t, err)

	assert.Contains(t, out, "Generated workflow with 10 nodes and 9 edges")
	assert.Contains(t, out, "File: smartsheets-issue-monitor-flow.json")
	assert.Contains(t, out, "Standard Tools: 8/8 agents ✅")
	assert.Contains(t, out, "first for this path")

	_, err = os.Stat(output)
	assert.NoError(t, err)
}

func TestGenerate_SecondRunIsUnchanged(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "generate")
	require.NoError(t, err)

	out, err := execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded as generation #2, unchanged since #1")

	out, err = execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "#2 just now [passed]")
	assert.Contains(t, out, "#1 just now [passed]")
}

func TestGenerate_OutFlagAndNoRecord(t *testing.T) {
	testEnv(t)
	out := filepath.Join(t.TempDir(), "custom.json")

	report, err := execute(t, "generate", "-o", out, "--no-record")
	require.NoError(t, err)
	assert.Contains(t, report, "File: custom.json")
	assert.NotContains(t, report, "Recorded")

	history, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, history, "No generations recorded yet.")
}

func TestGenerate_UnwritableOutputFails(t *testing.T) {
	testEnv(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := execute(t, "generate", "-o", filepath.Join(blocker, "flow.json"))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	_, output := testEnv(t)

	_, err := execute(t, "--no-record")
	require.NoError(t, err)

	out, err := execute(t, "check", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Nodes: 10 (expected: 10) ✅")
	assert.Contains(t, out, "Edges: 9 (expected: 9) ✅")

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"nodes": [], "edges": []}`), 0644))

	out, err = execute(t, "check", broken)
	require.NoError(t, err)
	assert.Contains(t, out, "Nodes: 0 (expected: 10) ❌")
}

func TestAgents(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "agents")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog: smartsheets-issue-monitor (builtin)")
	assert.Contains(t, out, "1. Agent.DataFetcher")
	assert.Contains(t, out, "windowSize(10)")
	assert.Contains(t, out, "→ agentAgentflow_8")
}

func TestCatalogs(t *testing.T) {
	dataDir, _ := testEnv(t)
	catalogs := filepath.Join(dataDir, "catalogs")
	require.NoError(t, os.MkdirAll(catalogs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(catalogs, "quiet.yaml"), []byte("name: quiet\n"), 0644))

	out, err := execute(t, "catalogs")
	require.NoError(t, err)
	assert.Contains(t, out, "smartsheets-issue-monitor")
	assert.Contains(t, out, filepath.Join(catalogs, "quiet.yaml"))

	out, err = execute(t, "agents", "--catalog", "quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog: quiet")
}
