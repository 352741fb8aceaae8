package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promotionbench/promotionbench/internal/scoring"
)

func TestForPhase_ValidRange(t *testing.T) {
	for phase := 1; phase <= 9; phase++ {
		a, err := ForPhase(phase)
		require.NoError(t, err)
		assert.Equal(t, phase, a.Phase)
	}

	for _, phase := range []int{0, 10, -1} {
		_, err := ForPhase(phase)
		assert.Error(t, err, "phase %d", phase)
	}
}

func TestAnchors_CeilingsMonotonic(t *testing.T) {
	anchors := All()
	require.Len(t, anchors, 9)

	for i := 1; i < len(anchors); i++ {
		prev, cur := anchors[i-1], anchors[i]
		assert.GreaterOrEqual(t, cur.VisibilityCeiling, prev.VisibilityCeiling, "visibility phase %d", cur.Phase)
		assert.GreaterOrEqual(t, cur.CompetenceCeiling, prev.CompetenceCeiling, "competence phase %d", cur.Phase)
		assert.GreaterOrEqual(t, cur.RelationshipsCeiling, prev.RelationshipsCeiling, "relationships phase %d", cur.Phase)
		assert.GreaterOrEqual(t, cur.LeadershipCeiling, prev.LeadershipCeiling, "leadership phase %d", cur.Phase)
	}

	// The finale opens the full range.
	final := anchors[8]
	assert.Equal(t, 100, final.VisibilityCeiling)
	assert.Equal(t, 100, final.CompetenceCeiling)
	assert.Equal(t, 100, final.RelationshipsCeiling)
	assert.Equal(t, 100, final.LeadershipCeiling)
}

func TestClamp_CapsAtCeiling(t *testing.T) {
	// A judge returning 80 visibility in phase 1 still yields 18.
	got, err := Clamp(1, scoring.PhaseScores{
		Visibility: 80, Competence: 90, Relationships: 70, Leadership: 60, Ethics: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, 18, got.Visibility)
	assert.Equal(t, 20, got.Competence)
	assert.Equal(t, 18, got.Relationships)
	assert.Equal(t, 15, got.Leadership)
	assert.Equal(t, 100, got.Ethics)
}

func TestClamp_NeverIncreases(t *testing.T) {
	in := scoring.PhaseScores{Visibility: 10, Competence: 12, Relationships: 9, Leadership: 8, Ethics: 85}
	for phase := 1; phase <= 9; phase++ {
		got, err := Clamp(phase, in)
		require.NoError(t, err)
		assert.LessOrEqual(t, got.Visibility, in.Visibility)
		assert.LessOrEqual(t, got.Competence, in.Competence)
		assert.LessOrEqual(t, got.Relationships, in.Relationships)
		assert.LessOrEqual(t, got.Leadership, in.Leadership)
		assert.Equal(t, in.Ethics, got.Ethics)
	}
}

func TestClamp_EthicsPassesThrough(t *testing.T) {
	// Even an ethics value above the other ceilings is untouched.
	got, err := Clamp(2, scoring.PhaseScores{Ethics: 55})
	require.NoError(t, err)
	assert.Equal(t, 55, got.Ethics)

	_, err = Clamp(0, scoring.PhaseScores{})
	assert.Error(t, err)
}

func TestAnchors_BandsNested(t *testing.T) {
	for _, a := range All() {
		assert.LessOrEqual(t, a.Poor.Min, a.Poor.Max, "phase %d poor", a.Phase)
		assert.LessOrEqual(t, a.Adequate.Min, a.Adequate.Max, "phase %d adequate", a.Phase)
		assert.LessOrEqual(t, a.Good.Min, a.Good.Max, "phase %d good", a.Phase)
		assert.LessOrEqual(t, a.Optimal.Min, a.Optimal.Max, "phase %d optimal", a.Phase)
		assert.Greater(t, a.Optimal.Max, a.Poor.Max, "phase %d ordering", a.Phase)
	}
}
