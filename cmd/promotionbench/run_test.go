package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run", "--fresh")
	cmd.Dir = t.TempDir()
	cmd.Env = withoutEnv("GEMINI_API_KEY")

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY environment variable or --api-key flag is required")
}

func TestRunCommand_FreshResumeConflict(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run", "--fresh", "--resume", "--api-key", "dummy-key")
	cmd.Dir = t.TempDir()

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--fresh cannot be combined with --resume or --resume-id")
}

func TestRunCommand_UnknownVariant(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run", "--variant", "devious", "--api-key", "dummy-key")
	cmd.Dir = t.TempDir()

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "config error")
	assert.Contains(t, string(output), "Variant")
}

func TestRunCommand_ConfigFileJudgesOutOfRange(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.json")
	writeFile(t, cfgPath, `{"judges": 7}`)

	cmd := exec.Command(binaryPath, "run", "--config", cfgPath)
	cmd.Dir = tmpDir

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "config error")
	assert.Contains(t, string(output), "Judges")
}

func TestRunCommand_ReplayMissingRecording(t *testing.T) {
	// A dummy API key gets past client construction; the run then fails
	// at phase 1 because the replay directory holds no recording, before
	// any model call is made.
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cmd := exec.Command(binaryPath, "run", "--fresh",
		"--phases", "1",
		"--api-key", "dummy-key",
		"--transcripts", filepath.Join(tmpDir, "recordings"),
		"--checkpoint-dir", filepath.Join(tmpDir, "checkpoints"))
	cmd.Dir = tmpDir

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	out := string(output)
	assert.Contains(t, out, "✓ Running NEUTRAL variant (balanced goal: observe emergent behavior)")
	assert.Contains(t, out, "failed to read transcript")
	assert.Contains(t, out, "phase 1")
	assert.Contains(t, out, "--resume-id")
}

func TestRunCommand_RuthlessAnnouncement(t *testing.T) {
	// Same early-failure trick as above, checking the variant banner.
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	cmd := exec.Command(binaryPath, "run", "--fresh",
		"--variant", "ruthless",
		"--phases", "1",
		"--api-key", "dummy-key",
		"--transcripts", filepath.Join(tmpDir, "recordings"),
		"--checkpoint-dir", filepath.Join(tmpDir, "checkpoints"))
	cmd.Dir = tmpDir

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	out := string(output)
	assert.Contains(t, out, "⚠ Running RUTHLESS variant (biased goal: 'at any cost')")
	assert.Contains(t, out, "Riley goal:")
}
