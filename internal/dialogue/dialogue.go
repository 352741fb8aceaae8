// Package dialogue generates phase scenes with the LLM acting as game
// master for the whole cast. It is one implementation of
// transcript.Source; the scoring engine never knows whether a transcript
// came from here or from a recording on disk.
package dialogue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/promotionbench/promotionbench/internal/llm"
	"github.com/promotionbench/promotionbench/internal/prompts"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/promotionbench/promotionbench/internal/transcript"
)

// sceneTemperature trades determinism for livelier scenes. Scoring
// stays at the default low temperature; only scene writing runs warm.
const sceneTemperature = 0.7

// defaultRounds bounds a scene whose phase definition forgot to set one.
const defaultRounds = 10

// Simulator writes a full multi-party scene in one generation call. The
// game master sees every character's hidden motivation; the transcript
// it returns only shows what was said and done in the room.
type Simulator struct {
	client llm.Client
	scn    *scenario.Scenario
}

// NewSimulator creates a scene simulator over the given cast and arc.
func NewSimulator(client llm.Client, scn *scenario.Scenario) *Simulator {
	return &Simulator{client: client, scn: scn}
}

// Transcript generates the scene for one phase.
func (s *Simulator) Transcript(ctx context.Context, req transcript.Request) (string, error) {
	out, err := s.client.GenerateContent(ctx, s.buildPrompt(req), llm.TierStandard,
		llm.WithTemperature(sceneTemperature))
	if err != nil {
		return "", fmt.Errorf("scene generation failed for phase %d: %w", req.Phase.Number, err)
	}
	return out, nil
}

func (s *Simulator) buildPrompt(req transcript.Request) string {
	phase := req.Phase
	template := prompts.MustGet("dialogue.json", "simulate-scene")
	return prompts.Format(template, map[string]string{
		"Premise":            scenario.Premise,
		"PhaseName":          phase.Name,
		"SceneType":          phase.SceneType,
		"Date":               phase.Date,
		"Quarter":            phase.Quarter,
		"CompanyState":       phase.CompanyState,
		"Stakes":             phase.Stakes,
		"Participants":       strings.Join(phase.Participants, ", "),
		"ParticipantContext": s.participantContext(req),
		"Beats":              numberedBeats(phase.Beats),
		"Rounds":             strconv.Itoa(roundsFor(phase)),
	})
}

// participantContext renders one block per participant: public persona,
// goal, private agenda, and the assembled situation context from the
// request.
func (s *Simulator) participantContext(req transcript.Request) string {
	var blocks []string
	for _, name := range req.Phase.Participants {
		var b strings.Builder
		ch, known := s.scn.Character(name)
		if known {
			fmt.Fprintf(&b, "### %s, %s\n", ch.Name, ch.Title)
			fmt.Fprintf(&b, "Goal: %s\n", ch.Goal)
			if len(ch.Backstory) > 0 {
				fmt.Fprintf(&b, "Background: %s\n", strings.Join(ch.Backstory, " "))
			}
			if ch.HiddenMotivation != "" {
				fmt.Fprintf(&b, "Private agenda (game master only, never stated aloud): %s\n", ch.HiddenMotivation)
			}
		} else {
			fmt.Fprintf(&b, "### %s\n", name)
		}
		if situation, ok := req.Contexts[name]; ok && situation != "" {
			fmt.Fprintf(&b, "Situation: %s\n", situation)
		}
		blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// AssembleContexts builds the per-participant situation text the
// pipeline hands to any transcript source: the phase premise framed with
// date and company status, that character's accumulated memories, the
// consequence context carried over from prior phases, and the current
// relationship temperature. Premises should already have fired events
// injected.
func AssembleContexts(phase scenario.Phase, premises map[string]string,
	memories map[string][]string, relationshipContext string, consequences []string) map[string]string {

	contexts := make(map[string]string, len(phase.Participants))
	for _, name := range phase.Participants {
		var parts []string

		frame := fmt.Sprintf("Date: %s (%s). Company status: %s.", phase.Date, phase.Quarter, phase.CompanyState)
		if premise := premises[name]; premise != "" {
			frame += " " + premise
		}
		parts = append(parts, frame)

		if recalled := memories[name]; len(recalled) > 0 {
			parts = append(parts, strings.Join(recalled, "\n"))
		}

		if len(consequences) > 0 {
			var b strings.Builder
			b.WriteString("[CONTEXT FROM PRIOR PHASES]\n")
			for _, c := range consequences {
				fmt.Fprintf(&b, "- %s\n", c)
			}
			parts = append(parts, strings.TrimRight(b.String(), "\n"))
		}

		if relationshipContext != "" {
			parts = append(parts, relationshipContext)
		}

		contexts[name] = strings.Join(parts, "\n\n")
	}
	return contexts
}

func numberedBeats(beats []string) string {
	if len(beats) == 0 {
		return "1. Play the scene to its natural conclusion."
	}
	lines := make([]string, len(beats))
	for i, beat := range beats {
		lines[i] = fmt.Sprintf("%d. %s", i+1, beat)
	}
	return strings.Join(lines, "\n")
}

func roundsFor(phase scenario.Phase) int {
	if phase.Rounds <= 0 {
		return defaultRounds
	}
	return phase.Rounds
}
