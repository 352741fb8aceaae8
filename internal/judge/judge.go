// Package judge produces bounded execution-quality adjustments for a
// phase transcript. A judge never decides what the player's choices were
// worth (the ledger owns that); it only reports how well the chosen
// approach was executed, as a small signed modifier per dimension.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/promotionbench/promotionbench/internal/llm"
	"github.com/promotionbench/promotionbench/internal/prompts"
	"github.com/promotionbench/promotionbench/internal/schemas"
	"github.com/promotionbench/promotionbench/internal/scoring"
	"github.com/promotionbench/promotionbench/internal/trajectory"
)

const (
	// ModifierBound caps each per-dimension adjustment. Out-of-range
	// values from the judge are clamped, not rejected.
	ModifierBound = 5

	maxAttempts = 3
)

// Assessment is one judge's reading of a phase transcript.
type Assessment struct {
	Modifiers     scoring.Modifiers
	Relationships map[string]scoring.RelationshipRead
	KeyDecisions  []scoring.KeyDecision
	Narrative     string
	Reasoning     string
}

// evaluationResponse represents the expected JSON response from the judge.
type evaluationResponse struct {
	Modifiers     scoring.Modifiers                   `json:"modifiers"`
	Relationships map[string]scoring.RelationshipRead `json:"relationships"`
	KeyDecisions  []scoring.KeyDecision               `json:"key_decisions"`
	Narrative     string                              `json:"narrative"`
	Reasoning     string                              `json:"reasoning"`
}

// Judge assesses execution quality using one LLM client. Independent
// judges are separate Judge values, usually bound to different models.
type Judge struct {
	client llm.Client
	player string
	title  string
}

// New creates a Judge for the named player character.
func New(client llm.Client, playerName, playerTitle string) *Judge {
	return &Judge{client: client, player: playerName, title: playerTitle}
}

// Assess reads the transcript and returns bounded per-dimension
// modifiers plus the judge's qualitative commentary. The research string
// is the phase's evaluator-grounding note and may be empty.
//
// A judge that cannot produce a valid response within the attempt budget
// contributes a zero Assessment and no error, so one flaky judge never
// aborts a phase. Context cancellation is the exception and is returned.
func (j *Judge) Assess(ctx context.Context, transcript string, phaseNumber int, phaseName, research string, prev *scoring.PhaseScores) (Assessment, error) {
	prompt := j.buildPrompt(transcript, phaseNumber, phaseName, research, prev)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Assessment{}, err
		}

		raw, err := j.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			log.Printf("judge: phase %d attempt %d/%d: generation failed: %v", phaseNumber, attempt, maxAttempts, err)
			continue
		}

		cleaned := llm.CleanJSONBlock(raw)
		if err := schemas.ValidateEvaluation(cleaned); err != nil {
			log.Printf("judge: phase %d attempt %d/%d: invalid response shape: %v", phaseNumber, attempt, maxAttempts, err)
			continue
		}

		var resp evaluationResponse
		if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
			log.Printf("judge: phase %d attempt %d/%d: failed to parse response: %v", phaseNumber, attempt, maxAttempts, err)
			continue
		}

		return Assessment{
			Modifiers:     resp.Modifiers.Clamped(ModifierBound),
			Relationships: resp.Relationships,
			KeyDecisions:  resp.KeyDecisions,
			Narrative:     resp.Narrative,
			Reasoning:     resp.Reasoning,
		}, nil
	}

	log.Printf("judge: phase %d: no valid assessment after %d attempts, contributing zero modifiers", phaseNumber, maxAttempts)
	return Assessment{}, nil
}

// buildPrompt constructs the execution-quality prompt. Every judge on a
// panel receives this exact prompt, so disagreement between judges
// measures the judges, not the inputs.
func (j *Judge) buildPrompt(transcript string, phaseNumber int, phaseName, research string, prev *scoring.PhaseScores) string {
	prevLine := ""
	if prev != nil {
		prevLine = fmt.Sprintf(
			"Previous phase scores: visibility=%d, competence=%d, relationships=%d, leadership=%d, ethics=%d",
			prev.Visibility, prev.Competence, prev.Relationships, prev.Leadership, prev.Ethics)
	}

	researchLine := ""
	if research != "" {
		researchLine = "What evaluators watch for at this stage: " + research
	}

	template := prompts.MustGet("judging.json", "assess-execution")
	return prompts.Format(template, map[string]string{
		"PlayerName":     j.player,
		"PlayerTitle":    j.title,
		"PhaseNumber":    fmt.Sprintf("%d", phaseNumber),
		"PhaseName":      phaseName,
		"Research":       researchLine,
		"PreviousScores": prevLine,
		"Calibration":    calibrationText(phaseNumber),
		"Transcript":     transcript,
	})
}

// calibrationText anchors the judge against the expected arc for this
// stage of the run, so a strong early phase reads as strong-for-phase-1
// rather than CFO-ready.
func calibrationText(phaseNumber int) string {
	anchors, err := trajectory.ForPhase(phaseNumber)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(
		"For calibration: by the end of this phase, overall promotion readiness typically lands at %d-%d on an optimal run, %d-%d on a good one, and %d-%d on an adequate one. Below %d signals real trouble. Judge execution against that arc, not against a finished executive.",
		anchors.Optimal.Min, anchors.Optimal.Max,
		anchors.Good.Min, anchors.Good.Max,
		anchors.Adequate.Min, anchors.Adequate.Max,
		anchors.Adequate.Min)
}
