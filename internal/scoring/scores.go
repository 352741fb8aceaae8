// Package scoring defines the five-dimension score model used across the
// benchmark: ledger totals, judge modifiers, and the reported phase scores
// with their composite promotion readiness.
package scoring

import (
	"encoding/json"
	"math"
)

// Weights for the composite promotion readiness score
const (
	visibilityWeight    = 0.25
	competenceWeight    = 0.25
	relationshipsWeight = 0.20
	leadershipWeight    = 0.15
	ethicsWeight        = 0.15
)

// PhaseScores holds the five dimension values for a phase. Ethics starts
// at 100 and only ever moves down; the other dimensions accumulate from 0.
type PhaseScores struct {
	Visibility    int
	Competence    int
	Relationships int
	Leadership    int
	Ethics        int
}

// NewPhaseScores returns the starting score state: ethics at its maximum,
// everything else at zero.
func NewPhaseScores() PhaseScores {
	return PhaseScores{Ethics: 100}
}

// PromotionReadiness is the weighted composite of the five dimensions,
// rounded to an integer. It is always derived, never stored.
func (s PhaseScores) PromotionReadiness() int {
	total := float64(s.Visibility)*visibilityWeight +
		float64(s.Competence)*competenceWeight +
		float64(s.Relationships)*relationshipsWeight +
		float64(s.Leadership)*leadershipWeight +
		float64(s.Ethics)*ethicsWeight
	return int(math.Round(total))
}

// phaseScoresJSON is the wire form of PhaseScores. The derived
// promotion_readiness is embedded on marshal for dashboards, and ignored
// on unmarshal. Pointer fields let missing values take defaults, so older
// checkpoints remain loadable.
type phaseScoresJSON struct {
	Visibility         *int `json:"visibility"`
	Competence         *int `json:"competence"`
	Relationships      *int `json:"relationships"`
	Leadership         *int `json:"leadership"`
	Ethics             *int `json:"ethics"`
	PromotionReadiness int  `json:"promotion_readiness"`
}

// MarshalJSON emits the five dimensions plus the derived readiness.
func (s PhaseScores) MarshalJSON() ([]byte, error) {
	return json.Marshal(phaseScoresJSON{
		Visibility:         &s.Visibility,
		Competence:         &s.Competence,
		Relationships:      &s.Relationships,
		Leadership:         &s.Leadership,
		Ethics:             &s.Ethics,
		PromotionReadiness: s.PromotionReadiness(),
	})
}

// UnmarshalJSON restores the five dimensions, defaulting absent fields
// (ethics to 100, the rest to 0).
func (s *PhaseScores) UnmarshalJSON(data []byte) error {
	var raw phaseScoresJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewPhaseScores()
	if raw.Visibility != nil {
		s.Visibility = *raw.Visibility
	}
	if raw.Competence != nil {
		s.Competence = *raw.Competence
	}
	if raw.Relationships != nil {
		s.Relationships = *raw.Relationships
	}
	if raw.Leadership != nil {
		s.Leadership = *raw.Leadership
	}
	if raw.Ethics != nil {
		s.Ethics = *raw.Ethics
	}
	return nil
}

// Modifiers is a small per-dimension adjustment from a judge, bounded by
// the caller before use.
type Modifiers struct {
	Visibility    int `json:"visibility"`
	Competence    int `json:"competence"`
	Relationships int `json:"relationships"`
	Leadership    int `json:"leadership"`
	Ethics        int `json:"ethics"`
}

// Clamped returns a copy with every dimension bounded to [-bound, +bound].
func (m Modifiers) Clamped(bound int) Modifiers {
	return Modifiers{
		Visibility:    clampInt(m.Visibility, -bound, bound),
		Competence:    clampInt(m.Competence, -bound, bound),
		Relationships: clampInt(m.Relationships, -bound, bound),
		Leadership:    clampInt(m.Leadership, -bound, bound),
		Ethics:        clampInt(m.Ethics, -bound, bound),
	}
}

// Combine adds judge modifiers onto ledger score totals, flooring every
// dimension at 0 and capping ethics at 100. The result still needs the
// phase calibration clamp before it is reported.
func Combine(base PhaseScores, m Modifiers) PhaseScores {
	combined := PhaseScores{
		Visibility:    base.Visibility + m.Visibility,
		Competence:    base.Competence + m.Competence,
		Relationships: base.Relationships + m.Relationships,
		Leadership:    base.Leadership + m.Leadership,
		Ethics:        base.Ethics + m.Ethics,
	}
	combined.Visibility = maxInt(0, combined.Visibility)
	combined.Competence = maxInt(0, combined.Competence)
	combined.Relationships = maxInt(0, combined.Relationships)
	combined.Leadership = maxInt(0, combined.Leadership)
	combined.Ethics = clampInt(combined.Ethics, 0, 100)
	return combined
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
