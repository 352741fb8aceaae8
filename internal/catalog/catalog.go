// Package catalog defines the decision catalog: scripted forks in the
// narrative with mutually exclusive, pre-authored options whose effects
// on the ledger are deterministic.
package catalog

import (
	"fmt"
	"sort"
)

// Bounds on authored content, checked by Validate.
const (
	minOptionsPerPoint = 2
	maxImpactMagnitude = 30
)

// ScoreImpact is the signed per-dimension delta an option applies to the
// ledger when chosen. Ethics deltas are only ever applied when negative.
type ScoreImpact struct {
	Visibility    int `json:"visibility"`
	Competence    int `json:"competence"`
	Relationships int `json:"relationships"`
	Leadership    int `json:"leadership"`
	Ethics        int `json:"ethics"`
}

// RelationshipImpact is an additive delta to one counterpart's
// accumulated relationship standing.
type RelationshipImpact struct {
	Counterpart string `json:"counterpart"`
	Delta       int    `json:"delta"`
	Reason      string `json:"reason"`
}

// Option is one mutually exclusive choice at a decision point.
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`

	Impact              ScoreImpact          `json:"impact"`
	RelationshipImpacts []RelationshipImpact `json:"relationship_impacts,omitempty"`

	// Unlocks is an optional note recorded verbatim on the ledger when
	// this option is chosen.
	Unlocks string `json:"unlocks,omitempty"`

	// ConsequencesText is optional narrative injected into the phase
	// after the decision's own phase.
	ConsequencesText string `json:"consequences_text,omitempty"`
}

// DecisionPoint is a scripted dilemma within one phase. The rubric guides
// the classifier; the dilemma and forcing function frame the prompt.
type DecisionPoint struct {
	ID                   string   `json:"id"`
	Phase                int      `json:"phase"`
	Name                 string   `json:"name"`
	Dilemma              string   `json:"dilemma"`
	ForcingFunction      string   `json:"forcing_function"`
	ClassificationRubric string   `json:"classification_rubric"`
	Options              []Option `json:"options"`
}

// Option returns the option with the given ID, if present.
func (dp DecisionPoint) Option(id string) (Option, bool) {
	for _, opt := range dp.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// OptionIDs lists the decision point's option IDs in authored order.
func (dp DecisionPoint) OptionIDs() []string {
	ids := make([]string, 0, len(dp.Options))
	for _, opt := range dp.Options {
		ids = append(ids, opt.ID)
	}
	return ids
}

// Catalog is the full set of decision points for a scenario.
type Catalog struct {
	points []DecisionPoint
}

// New builds a catalog from authored decision points.
func New(points []DecisionPoint) *Catalog {
	return &Catalog{points: points}
}

// All returns every decision point.
func (c *Catalog) All() []DecisionPoint {
	return c.points
}

// ForPhase returns the decision points active in a phase, sorted by ID so
// that classification and application order is deterministic.
func (c *Catalog) ForPhase(phase int) []DecisionPoint {
	var active []DecisionPoint
	for _, dp := range c.points {
		if dp.Phase == phase {
			active = append(active, dp)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active
}

// Find returns the decision point with the given ID.
func (c *Catalog) Find(id string) (DecisionPoint, bool) {
	for _, dp := range c.points {
		if dp.ID == id {
			return dp, true
		}
	}
	return DecisionPoint{}, false
}

// Validate checks the structural invariants of authored content: unique
// IDs, enough options per point, prompting text present, impact magnitudes
// in range, and no strictly dominant option (every option must cost
// something somewhere).
func (c *Catalog) Validate() error {
	seenPoints := make(map[string]bool)
	seenOptions := make(map[string]string)

	for _, dp := range c.points {
		if dp.ID == "" {
			return fmt.Errorf("decision point in phase %d has empty id", dp.Phase)
		}
		if seenPoints[dp.ID] {
			return fmt.Errorf("duplicate decision point id %q", dp.ID)
		}
		seenPoints[dp.ID] = true

		if len(dp.Options) < minOptionsPerPoint {
			return fmt.Errorf("decision point %q has %d options, need at least %d", dp.ID, len(dp.Options), minOptionsPerPoint)
		}
		if dp.Dilemma == "" || dp.ForcingFunction == "" || dp.ClassificationRubric == "" {
			return fmt.Errorf("decision point %q is missing prompting text", dp.ID)
		}

		for _, opt := range dp.Options {
			if opt.ID == "" {
				return fmt.Errorf("decision point %q has an option with empty id", dp.ID)
			}
			if owner, dup := seenOptions[opt.ID]; dup {
				return fmt.Errorf("option id %q appears in both %q and %q", opt.ID, owner, dp.ID)
			}
			seenOptions[opt.ID] = dp.ID

			if err := validateImpacts(dp.ID, opt); err != nil {
				return err
			}
			if !hasNonPositiveEffect(opt) {
				return fmt.Errorf("option %q in %q has no cost anywhere", opt.ID, dp.ID)
			}
		}
	}
	return nil
}

func validateImpacts(dpID string, opt Option) error {
	for _, v := range []int{
		opt.Impact.Visibility, opt.Impact.Competence, opt.Impact.Relationships,
		opt.Impact.Leadership, opt.Impact.Ethics,
	} {
		if v < -maxImpactMagnitude || v > maxImpactMagnitude {
			return fmt.Errorf("option %q in %q has score impact %d outside [-%d, %d]", opt.ID, dpID, v, maxImpactMagnitude, maxImpactMagnitude)
		}
	}
	for _, rel := range opt.RelationshipImpacts {
		if rel.Counterpart == "" {
			return fmt.Errorf("option %q in %q has a relationship impact with no counterpart", opt.ID, dpID)
		}
		if rel.Delta < -maxImpactMagnitude || rel.Delta > maxImpactMagnitude {
			return fmt.Errorf("option %q in %q has relationship delta %d outside [-%d, %d]", opt.ID, dpID, rel.Delta, maxImpactMagnitude, maxImpactMagnitude)
		}
	}
	return nil
}

// hasNonPositiveEffect reports whether the option carries at least one
// zero-or-negative score impact or a negative relationship delta. Options
// that help everywhere would make the benchmark trivially gameable.
func hasNonPositiveEffect(opt Option) bool {
	for _, v := range []int{
		opt.Impact.Visibility, opt.Impact.Competence, opt.Impact.Relationships,
		opt.Impact.Leadership, opt.Impact.Ethics,
	} {
		if v <= 0 {
			return true
		}
	}
	for _, rel := range opt.RelationshipImpacts {
		if rel.Delta <= 0 {
			return true
		}
	}
	return false
}
