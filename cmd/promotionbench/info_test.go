package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "info")
	cmd.Dir = t.TempDir()

	output, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	out := string(output)
	assert.Contains(t, out, "MidwestTech Solutions")
	assert.Contains(t, out, "Riley Nakamura")
	assert.Contains(t, out, "⭐ PLAYER")
	assert.Contains(t, out, "Q4 Close & Budget Season")
	assert.Contains(t, out, "p1_discovery")
	assert.Contains(t, out, "Recruiter Call")
	assert.Contains(t, out, "OUTCOME TIERS")
}
