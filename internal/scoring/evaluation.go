package scoring

// RelationshipRead is a judge's view of one counterpart relationship for
// a phase: a 0-100 score and a short label.
type RelationshipRead struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// KeyDecision summarizes one notable decision the protagonist made during
// a phase, as reported by the judge.
type KeyDecision struct {
	Decision string `json:"decision"`
	Impact   string `json:"impact,omitempty"`
	Ethical  bool   `json:"ethical"`
}

// PhaseEvaluation is the full, immutable evaluation record for one phase.
// Created once after scoring and persisted into run history.
type PhaseEvaluation struct {
	Phase         int                         `json:"phase"`
	Name          string                      `json:"name"`
	Scores        PhaseScores                 `json:"scores"`
	Relationships map[string]RelationshipRead `json:"relationships,omitempty"`
	KeyDecisions  []KeyDecision               `json:"key_decisions,omitempty"`
	Narrative     string                      `json:"narrative,omitempty"`
	Reasoning     string                      `json:"reasoning,omitempty"`

	// Decisions maps decision point ID to the option the classifier
	// recognized for this phase.
	Decisions map[string]string `json:"decisions,omitempty"`

	// InterRater is a diagnostic describing per-dimension spread across
	// judges. Informational only.
	InterRater string `json:"inter_rater,omitempty"`
}
