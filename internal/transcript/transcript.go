// Package transcript is the boundary between scene generation and the
// scoring engine. Whatever produced the raw text (live LLM simulation or
// a recorded file), the engine only ever sees a cleaned, bounded
// transcript: setup boilerplate stripped, length capped, and a salvage
// path for logs that barely look like dialogue at all.
package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/promotionbench/promotionbench/internal/scenario"
)

// MaxChars caps what is sent to the judges. Beyond this the marginal
// signal is not worth the token spend.
const MaxChars = 12000

// salvageHead bounds the raw fallback when no dialogue can be found.
const salvageHead = 8000

// setupMarkers identify agent-framework scaffolding that sometimes leaks
// into generated scenes. Lines containing any of these are not dialogue.
var setupMarkers = []string{
	"The instructions for how to play",
	"This is a social science experiment",
	"Maximize your career advancement",
	"tabletop roleplaying game",
	"What kind of person is",
	"What situation is",
	"What would a person like",
	"Recent observations of",
	"[observation]",
}

// Request carries everything a transcript source needs to produce one
// phase's scene: the phase definition and the fully assembled
// per-participant context (memories, relationships, consequences and
// events already folded in).
type Request struct {
	Phase    scenario.Phase
	Contexts map[string]string
}

// Source produces the raw transcript for a phase. Implementations
// include the live LLM scene simulator and a directory of recordings.
type Source interface {
	Transcript(ctx context.Context, req Request) (string, error)
}

// Clean filters setup boilerplate out of a raw transcript and truncates
// the result. If filtering leaves nothing, the salvage path runs against
// the original text instead, so a weird log still yields something to
// judge.
func Clean(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isDialogue(line) {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return Truncate(Salvage(raw))
	}
	return Truncate(strings.Join(kept, "\n"))
}

// Salvage extracts dialogue-shaped lines from a raw dump: speaker lines
// ("Name -- line"), event banners, and termination checks. When nothing
// matches, the head of the raw text is returned as-is.
func Salvage(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, " -- "):
			lines = append(lines, line)
		case strings.HasPrefix(line, "Event:"):
			lines = append(lines, line)
		case strings.HasPrefix(line, "Terminate?"):
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Truncate(Head(raw, salvageHead))
	}
	return strings.Join(lines, "\n\n")
}

// Truncate caps a transcript at MaxChars without splitting a rune.
func Truncate(s string) string {
	return Head(s, MaxChars)
}

// Head returns the first n bytes of s without splitting a rune.
func Head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isDialogue(line string) bool {
	for _, marker := range setupMarkers {
		if strings.Contains(line, marker) {
			return false
		}
	}
	return true
}

// Filename is the canonical recording name for a phase transcript.
func Filename(phase int, name string) string {
	return fmt.Sprintf("phase_%02d_%s.txt", phase, slugify(name))
}

// Save writes a phase transcript to dir using the canonical filename,
// creating the directory if needed. Returns the written path.
func Save(dir string, phase int, name, transcript string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create transcript dir: %w", err)
	}
	path := filepath.Join(dir, Filename(phase, name))
	if err := os.WriteFile(path, []byte(transcript), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}

// FileSource replays recorded transcripts from a directory. Useful for
// deterministic scoring runs and for judging transcripts produced by an
// external simulation.
type FileSource struct {
	Dir string
}

// Transcript reads the recording for the requested phase. A missing
// recording is an error: replay mode must never silently invent a phase.
func (f FileSource) Transcript(_ context.Context, req Request) (string, error) {
	path := filepath.Join(f.Dir, Filename(req.Phase.Number, req.Phase.Name))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript %s: %w", path, err)
	}
	return string(data), nil
}

// slugify lowercases a phase name and squeezes everything that is not a
// letter or digit into single underscores.
func slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
