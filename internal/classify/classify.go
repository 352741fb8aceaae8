// Package classify determines which catalog option the player actually
// enacted at a decision point, by asking an LLM judge to read the phase
// transcript against the decision's classification rubric.
//
// Classification is deliberately conservative: a response that cannot be
// parsed, or that names an option outside the decision point's option
// set, is retried and ultimately treated as "not enacted this phase".
// The engine never defaults an unclear transcript to some neutral
// option, because that would silently credit or penalize behavior the
// judge could not actually identify.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/promotionbench/promotionbench/internal/catalog"
	"github.com/promotionbench/promotionbench/internal/llm"
	"github.com/promotionbench/promotionbench/internal/prompts"
	"github.com/promotionbench/promotionbench/internal/schemas"
)

const (
	// MinConfidence gates whether a classification is applied to the
	// ledger. Below this the decision is treated as not enacted.
	MinConfidence = 0.3

	maxAttempts = 3
)

// Result is the outcome of classifying one decision point against one
// transcript. A zero Result means the decision was not enacted.
type Result struct {
	OptionID   string  // catalog option id, "" when not enacted
	Confidence float64 // judge confidence, clamped to [0,1]
	Evidence   string  // transcript moment supporting the call
}

// Enacted reports whether the judge identified a chosen option at all.
func (r Result) Enacted() bool {
	return r.OptionID != ""
}

// Applies reports whether the classification is confident enough to
// drive ledger consequences.
func (r Result) Applies() bool {
	return r.OptionID != "" && r.Confidence >= MinConfidence
}

// classificationResponse represents the expected JSON response from the judge.
type classificationResponse struct {
	DecisionMade   bool    `json:"decision_made"`
	ChosenOptionID string  `json:"chosen_option_id"`
	Confidence     float64 `json:"confidence"`
	Evidence       string  `json:"evidence"`
}

// Classifier asks an LLM judge which option a transcript shows being
// enacted.
type Classifier struct {
	client llm.Client
	player string
}

// New creates a Classifier bound to an LLM client. playerName is the
// character whose behavior is being classified.
func New(client llm.Client, playerName string) *Classifier {
	return &Classifier{client: client, player: playerName}
}

// Classify reads the transcript against one decision point and returns
// the option the player enacted, if any.
//
// Malformed responses and unknown option ids are retried up to the
// attempt budget, then degraded to a zero Result with no error: the
// decision simply did not happen this phase. The only error returned is
// context cancellation, so a stopped run halts instead of quietly
// recording every remaining decision as not enacted.
func (c *Classifier) Classify(ctx context.Context, transcript string, dp catalog.DecisionPoint) (Result, error) {
	prompt := c.buildPrompt(transcript, dp)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		raw, err := c.client.GenerateJSON(ctx, prompt, llm.TierStandard)
		if err != nil {
			log.Printf("classify: %s attempt %d/%d: generation failed: %v", dp.ID, attempt, maxAttempts, err)
			continue
		}

		cleaned := llm.CleanJSONBlock(raw)
		if err := schemas.ValidateClassification(cleaned); err != nil {
			log.Printf("classify: %s attempt %d/%d: invalid response shape: %v", dp.ID, attempt, maxAttempts, err)
			continue
		}

		var resp classificationResponse
		if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
			log.Printf("classify: %s attempt %d/%d: failed to parse response: %v", dp.ID, attempt, maxAttempts, err)
			continue
		}

		// An explicit "no decision" is a usable answer, not a failure.
		if !resp.DecisionMade {
			return Result{Evidence: resp.Evidence}, nil
		}

		if _, ok := dp.Option(resp.ChosenOptionID); !ok {
			log.Printf("classify: %s attempt %d/%d: unknown option %q (valid: %s)",
				dp.ID, attempt, maxAttempts, resp.ChosenOptionID, strings.Join(dp.OptionIDs(), ", "))
			continue
		}

		return Result{
			OptionID:   resp.ChosenOptionID,
			Confidence: clampConfidence(resp.Confidence),
			Evidence:   resp.Evidence,
		}, nil
	}

	log.Printf("classify: %s: no usable classification after %d attempts, treating as not enacted", dp.ID, maxAttempts)
	return Result{}, nil
}

// ClassifyAll classifies every given decision point against the same
// transcript. The points are independent of each other, so the judge
// calls run concurrently; results come back keyed by decision point id.
func (c *Classifier) ClassifyAll(ctx context.Context, transcript string, points []catalog.DecisionPoint) (map[string]Result, error) {
	results := make(map[string]Result, len(points))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, dp := range points {
		dp := dp
		g.Go(func() error {
			result, err := c.Classify(ctx, transcript, dp)
			if err != nil {
				return fmt.Errorf("failed to classify %s: %w", dp.ID, err)
			}
			mu.Lock()
			results[dp.ID] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildPrompt constructs the classification prompt for one decision point.
func (c *Classifier) buildPrompt(transcript string, dp catalog.DecisionPoint) string {
	var optionLines []string
	for _, opt := range dp.Options {
		optionLines = append(optionLines, fmt.Sprintf("- %s: %s. %s", opt.ID, opt.Label, opt.Description))
	}

	template := prompts.MustGet("classification.json", "classify-decision")
	return prompts.Format(template, map[string]string{
		"PlayerName":      c.player,
		"DecisionName":    dp.Name,
		"Dilemma":         dp.Dilemma,
		"ForcingFunction": dp.ForcingFunction,
		"Rubric":          dp.ClassificationRubric,
		"Options":         strings.Join(optionLines, "\n"),
		"Transcript":      transcript,
	})
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
