// Package ledger tracks the persistent consequences of play across
// phases: accumulated dimension totals, relationship standings, chosen
// decisions, fired events, and narrative carried into later scenes. This
// state is what turns nine scenes into one continuous story.
//
// All writes go through the ledger's methods. Everything else in the
// engine reads snapshots.
package ledger

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/promotionbench/promotionbench/internal/catalog"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

// Ledger is the run-wide consequence state.
type Ledger struct {
	scores              scoring.PhaseScores
	relationshipDeltas  map[string]int
	classifiedDecisions map[string]string
	pendingConsequences map[int][]string
	firedEvents         map[string]bool
	unlocks             []string
}

// New creates a fresh ledger tracking the given counterparts. Dimension
// totals start at zero, ethics at 100, relationships neutral.
func New(counterparts []string) *Ledger {
	deltas := make(map[string]int, len(counterparts))
	for _, name := range counterparts {
		deltas[name] = 0
	}
	return &Ledger{
		scores:              scoring.NewPhaseScores(),
		relationshipDeltas:  deltas,
		classifiedDecisions: make(map[string]string),
		pendingConsequences: make(map[int][]string),
		firedEvents:         make(map[string]bool),
	}
}

// ApplyDecision records an enacted option and applies its deterministic
// effects: dimension deltas, relationship deltas, unlocks, and narrative
// consequences queued for the following phase.
//
// Non-ethics totals are plain sums and may run negative; clamping to the
// reportable range happens when phase scores are combined. Ethics only
// moves down: positive ethics deltas are ignored.
func (l *Ledger) ApplyDecision(dp catalog.DecisionPoint, optionID string) error {
	opt, ok := dp.Option(optionID)
	if !ok {
		return fmt.Errorf("decision point %q has no option %q", dp.ID, optionID)
	}

	l.classifiedDecisions[dp.ID] = optionID

	l.scores.Visibility += opt.Impact.Visibility
	l.scores.Competence += opt.Impact.Competence
	l.scores.Relationships += opt.Impact.Relationships
	l.scores.Leadership += opt.Impact.Leadership
	if opt.Impact.Ethics < 0 {
		l.scores.Ethics += opt.Impact.Ethics
		if l.scores.Ethics < 0 {
			l.scores.Ethics = 0
		}
	}

	for _, rel := range opt.RelationshipImpacts {
		if _, tracked := l.relationshipDeltas[rel.Counterpart]; !tracked {
			log.Printf("ledger: skipping relationship delta for untracked counterpart %q (%s)", rel.Counterpart, opt.ID)
			continue
		}
		l.relationshipDeltas[rel.Counterpart] += rel.Delta
		log.Printf("ledger: relationship %s %+d (%s)", rel.Counterpart, rel.Delta, rel.Reason)
	}

	if opt.Unlocks != "" {
		l.unlocks = append(l.unlocks, opt.Unlocks)
	}
	if opt.ConsequencesText != "" {
		next := dp.Phase + 1
		l.pendingConsequences[next] = append(l.pendingConsequences[next], opt.ConsequencesText)
	}
	return nil
}

// Scores returns the accumulated dimension totals.
func (l *Ledger) Scores() scoring.PhaseScores {
	return l.scores
}

// RelationshipDelta returns one counterpart's accumulated standing.
func (l *Ledger) RelationshipDelta(name string) (int, bool) {
	d, ok := l.relationshipDeltas[name]
	return d, ok
}

// RelationshipDeltas returns a copy of all tracked standings.
func (l *Ledger) RelationshipDeltas() map[string]int {
	out := make(map[string]int, len(l.relationshipDeltas))
	for k, v := range l.relationshipDeltas {
		out[k] = v
	}
	return out
}

// Counterparts returns tracked counterpart names in sorted order.
func (l *Ledger) Counterparts() []string {
	names := make([]string, 0, len(l.relationshipDeltas))
	for name := range l.relationshipDeltas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RelationshipLabel maps an accumulated delta to the standing shown in
// scene context and reports.
func RelationshipLabel(delta int) string {
	switch {
	case delta > 10:
		return "strong ally (trust built over time)"
	case delta > 0:
		return "cautiously supportive"
	case delta < -10:
		return "actively hostile or distrustful"
	case delta < 0:
		return "somewhat wary of you"
	default:
		return "neutral professional relationship"
	}
}

// RelationshipContext renders one line per counterpart for premise
// injection, in sorted counterpart order.
func (l *Ledger) RelationshipContext() string {
	var lines []string
	for _, name := range l.Counterparts() {
		delta := l.relationshipDeltas[name]
		switch {
		case delta > 10:
			lines = append(lines, fmt.Sprintf("%s is a strong ally (trust built over time).", name))
		case delta > 0:
			lines = append(lines, fmt.Sprintf("%s is cautiously supportive.", name))
		case delta < -10:
			lines = append(lines, fmt.Sprintf("%s is actively hostile or distrustful.", name))
		case delta < 0:
			lines = append(lines, fmt.Sprintf("%s is somewhat wary of you.", name))
		default:
			lines = append(lines, fmt.Sprintf("%s has a neutral professional relationship.", name))
		}
	}
	return strings.Join(lines, "\n")
}

// Decisions returns a copy of the decision point to option mapping.
func (l *Ledger) Decisions() map[string]string {
	out := make(map[string]string, len(l.classifiedDecisions))
	for k, v := range l.classifiedDecisions {
		out[k] = v
	}
	return out
}

// Decision returns the enacted option for a decision point, if any.
func (l *Ledger) Decision(decisionPointID string) (string, bool) {
	opt, ok := l.classifiedDecisions[decisionPointID]
	return opt, ok
}

// ConsequencesFor returns the narrative consequences queued for a phase.
func (l *Ledger) ConsequencesFor(phase int) []string {
	return l.pendingConsequences[phase]
}

// Unlocks returns accumulated unlock notes in the order earned.
func (l *Ledger) Unlocks() []string {
	out := make([]string, len(l.unlocks))
	copy(out, l.unlocks)
	return out
}

// MarkEventFired records that a world event has fired this run.
func (l *Ledger) MarkEventFired(name string) {
	l.firedEvents[name] = true
}

// EventFired reports whether a world event already fired this run.
func (l *Ledger) EventFired(name string) bool {
	return l.firedEvents[name]
}

// FiredEvents returns fired event names in sorted order.
func (l *Ledger) FiredEvents() []string {
	names := make([]string, 0, len(l.firedEvents))
	for name := range l.firedEvents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type ledgerJSON struct {
	Scores              *scoring.PhaseScores `json:"scores"`
	RelationshipDeltas  map[string]int       `json:"relationship_deltas"`
	ClassifiedDecisions map[string]string    `json:"classified_decisions"`
	PendingConsequences map[int][]string     `json:"pending_consequences"`
	FiredEvents         []string             `json:"fired_events"`
	Unlocks             []string             `json:"unlocks"`
}

// MarshalJSON serializes the ledger for checkpoints and exports.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	scores := l.scores
	return json.Marshal(ledgerJSON{
		Scores:              &scores,
		RelationshipDeltas:  l.relationshipDeltas,
		ClassifiedDecisions: l.classifiedDecisions,
		PendingConsequences: l.pendingConsequences,
		FiredEvents:         l.FiredEvents(),
		Unlocks:             l.unlocks,
	})
}

// UnmarshalJSON restores a ledger from a checkpoint, tolerating missing
// fields from older snapshots.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw ledgerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode ledger: %w", err)
	}

	if raw.Scores != nil {
		l.scores = *raw.Scores
	} else {
		l.scores = scoring.NewPhaseScores()
	}
	l.relationshipDeltas = raw.RelationshipDeltas
	if l.relationshipDeltas == nil {
		l.relationshipDeltas = make(map[string]int)
	}
	l.classifiedDecisions = raw.ClassifiedDecisions
	if l.classifiedDecisions == nil {
		l.classifiedDecisions = make(map[string]string)
	}
	l.pendingConsequences = raw.PendingConsequences
	if l.pendingConsequences == nil {
		l.pendingConsequences = make(map[int][]string)
	}
	l.firedEvents = make(map[string]bool, len(raw.FiredEvents))
	for _, name := range raw.FiredEvents {
		l.firedEvents[name] = true
	}
	l.unlocks = raw.Unlocks
	return nil
}
