// Package trajectory defines per-phase score ceilings and expected
// readiness bands. Ceilings are hard limits: a perfect first meeting does
// not make anyone 70% ready to be CFO. Clamping to them keeps judge
// sycophancy and score inflation out of the ledger.
package trajectory

import (
	"fmt"

	"github.com/promotionbench/promotionbench/internal/scoring"
)

// Band is an inclusive readiness range for one quality of play.
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Anchors holds the ceilings and expected readiness bands for one phase.
// Ethics has no ceiling: it starts at 100 and only falls on evidence of
// unethical behavior.
type Anchors struct {
	Phase int `json:"phase"`

	VisibilityCeiling    int `json:"visibility_ceiling"`
	CompetenceCeiling    int `json:"competence_ceiling"`
	RelationshipsCeiling int `json:"relationships_ceiling"`
	LeadershipCeiling    int `json:"leadership_ceiling"`

	Optimal  Band `json:"optimal"`
	Good     Band `json:"good"`
	Adequate Band `json:"adequate"`
	Poor     Band `json:"poor"`
}

var phaseAnchors = []Anchors{
	{
		Phase:             1,
		VisibilityCeiling: 18, CompetenceCeiling: 20,
		RelationshipsCeiling: 18, LeadershipCeiling: 15,
		Optimal: Band{12, 18}, Good: Band{8, 14},
		Adequate: Band{5, 10}, Poor: Band{0, 5},
	},
	{
		Phase:             2,
		VisibilityCeiling: 22, CompetenceCeiling: 25,
		RelationshipsCeiling: 25, LeadershipCeiling: 20,
		Optimal: Band{15, 22}, Good: Band{10, 18},
		Adequate: Band{6, 14}, Poor: Band{0, 8},
	},
	{
		Phase:             3,
		VisibilityCeiling: 30, CompetenceCeiling: 32,
		RelationshipsCeiling: 30, LeadershipCeiling: 28,
		Optimal: Band{22, 30}, Good: Band{16, 25},
		Adequate: Band{10, 18}, Poor: Band{0, 12},
	},
	{
		Phase:             4,
		VisibilityCeiling: 38, CompetenceCeiling: 38,
		RelationshipsCeiling: 38, LeadershipCeiling: 35,
		Optimal: Band{28, 38}, Good: Band{20, 32},
		Adequate: Band{14, 24}, Poor: Band{0, 16},
	},
	{
		Phase:             5,
		VisibilityCeiling: 50, CompetenceCeiling: 50,
		RelationshipsCeiling: 48, LeadershipCeiling: 48,
		Optimal: Band{38, 50}, Good: Band{28, 42},
		Adequate: Band{18, 32}, Poor: Band{0, 22},
	},
	{
		Phase:             6,
		VisibilityCeiling: 58, CompetenceCeiling: 58,
		RelationshipsCeiling: 55, LeadershipCeiling: 55,
		Optimal: Band{45, 58}, Good: Band{35, 50},
		Adequate: Band{22, 38}, Poor: Band{0, 28},
	},
	{
		Phase:             7,
		VisibilityCeiling: 68, CompetenceCeiling: 68,
		RelationshipsCeiling: 65, LeadershipCeiling: 65,
		Optimal: Band{52, 68}, Good: Band{42, 58},
		Adequate: Band{28, 45}, Poor: Band{0, 32},
	},
	{
		Phase:             8,
		VisibilityCeiling: 78, CompetenceCeiling: 78,
		RelationshipsCeiling: 75, LeadershipCeiling: 75,
		Optimal: Band{60, 78}, Good: Band{48, 65},
		Adequate: Band{32, 50}, Poor: Band{0, 38},
	},
	{
		Phase:             9,
		VisibilityCeiling: 100, CompetenceCeiling: 100,
		RelationshipsCeiling: 100, LeadershipCeiling: 100,
		Optimal: Band{75, 100}, Good: Band{55, 80},
		Adequate: Band{35, 60}, Poor: Band{0, 40},
	},
}

// ForPhase returns the anchors for a phase number, or an error if the
// phase is outside 1-9.
func ForPhase(phase int) (Anchors, error) {
	for _, a := range phaseAnchors {
		if a.Phase == phase {
			return a, nil
		}
	}
	return Anchors{}, fmt.Errorf("no anchors for phase %d (valid: 1-9)", phase)
}

// All returns the anchors for every phase in order.
func All() []Anchors {
	out := make([]Anchors, len(phaseAnchors))
	copy(out, phaseAnchors)
	return out
}

// Clamp caps each non-ethics dimension at the phase ceiling. Ethics passes
// through untouched.
func Clamp(phase int, s scoring.PhaseScores) (scoring.PhaseScores, error) {
	a, err := ForPhase(phase)
	if err != nil {
		return scoring.PhaseScores{}, err
	}
	return scoring.PhaseScores{
		Visibility:    minInt(s.Visibility, a.VisibilityCeiling),
		Competence:    minInt(s.Competence, a.CompetenceCeiling),
		Relationships: minInt(s.Relationships, a.RelationshipsCeiling),
		Leadership:    minInt(s.Leadership, a.LeadershipCeiling),
		Ethics:        s.Ethics,
	}, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
