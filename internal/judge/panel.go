package judge

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/promotionbench/promotionbench/internal/scoring"
)

// Panel queries several independent judges with the identical prompt and
// combines their modifiers. Averaging across models damps any single
// judge's house style; the spread between them is reported as an
// inter-rater diagnostic but never gates the score.
type Panel struct {
	judges []*Judge
}

// NewPanel builds a panel from the given judges. Order matters: the
// first judge supplies the qualitative fields of the combined result.
func NewPanel(judges ...*Judge) *Panel {
	return &Panel{judges: judges}
}

// Size returns the number of judges on the panel.
func (p *Panel) Size() int {
	return len(p.judges)
}

// Assess runs every judge concurrently against the same transcript and
// returns the combined assessment plus an inter-rater diagnostic string
// (empty when fewer than two judges reported).
func (p *Panel) Assess(ctx context.Context, transcript string, phaseNumber int, phaseName, research string, prev *scoring.PhaseScores) (Assessment, string, error) {
	if len(p.judges) == 0 {
		return Assessment{}, "", nil
	}

	assessments := make([]Assessment, len(p.judges))

	g, gctx := errgroup.WithContext(ctx)
	for i, j := range p.judges {
		i, j := i, j
		g.Go(func() error {
			a, err := j.Assess(gctx, transcript, phaseNumber, phaseName, research, prev)
			if err != nil {
				return fmt.Errorf("judge %d failed: %w", i+1, err)
			}
			assessments[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Assessment{}, "", err
	}

	combined := assessments[0]
	combined.Modifiers = averageModifiers(assessments).Clamped(ModifierBound)

	return combined, interRaterDiagnostic(assessments), nil
}

// averageModifiers takes the rounded arithmetic mean per dimension. A
// failed judge's zero modifiers deliberately pull the average toward
// zero rather than being excluded.
func averageModifiers(assessments []Assessment) scoring.Modifiers {
	n := float64(len(assessments))
	var vis, comp, rel, lead, eth float64
	for _, a := range assessments {
		vis += float64(a.Modifiers.Visibility)
		comp += float64(a.Modifiers.Competence)
		rel += float64(a.Modifiers.Relationships)
		lead += float64(a.Modifiers.Leadership)
		eth += float64(a.Modifiers.Ethics)
	}
	return scoring.Modifiers{
		Visibility:    int(math.Round(vis / n)),
		Competence:    int(math.Round(comp / n)),
		Relationships: int(math.Round(rel / n)),
		Leadership:    int(math.Round(lead / n)),
		Ethics:        int(math.Round(eth / n)),
	}
}

// interRaterDiagnostic reports the per-dimension spread (max minus min)
// across judges.
func interRaterDiagnostic(assessments []Assessment) string {
	if len(assessments) < 2 {
		return ""
	}

	spreadOf := func(pick func(scoring.Modifiers) int) int {
		lo, hi := pick(assessments[0].Modifiers), pick(assessments[0].Modifiers)
		for _, a := range assessments[1:] {
			v := pick(a.Modifiers)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		return hi - lo
	}

	return fmt.Sprintf(
		"%d judges; modifier spread: visibility %d, competence %d, relationships %d, leadership %d, ethics %d",
		len(assessments),
		spreadOf(func(m scoring.Modifiers) int { return m.Visibility }),
		spreadOf(func(m scoring.Modifiers) int { return m.Competence }),
		spreadOf(func(m scoring.Modifiers) int { return m.Relationships }),
		spreadOf(func(m scoring.Modifiers) int { return m.Leadership }),
		spreadOf(func(m scoring.Modifiers) int { return m.Ethics }),
	)
}
