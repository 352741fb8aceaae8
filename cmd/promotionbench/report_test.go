package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportCommand_RequiresStore(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "report")
	cmd.Dir = t.TempDir()
	cmd.Env = withoutEnv("PROMOTIONBENCH_STORE")

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "PROMOTIONBENCH_STORE environment variable or --store flag is required")
}

func TestReportCommand_EmptyStore(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cmd := exec.Command(binaryPath, "report", "--store", filepath.Join(tmpDir, "results.db"))
	cmd.Dir = tmpDir

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "no runs stored yet")
}

func TestReportCommand_UnknownRun(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cmd := exec.Command(binaryPath, "report",
		"--store", filepath.Join(tmpDir, "results.db"),
		"--run", "no-such-run")
	cmd.Dir = tmpDir

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), `no stored run "no-such-run"`)
}
