// Package pipeline orchestrates a full benchmark run: the phase loop,
// scoring, memory persistence, checkpointing, and final outcome
// resolution. It owns sequencing and recovery; the domain logic lives in
// the packages it wires together.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promotionbench/promotionbench/internal/checkpoint"
	"github.com/promotionbench/promotionbench/internal/classify"
	"github.com/promotionbench/promotionbench/internal/dialogue"
	"github.com/promotionbench/promotionbench/internal/events"
	"github.com/promotionbench/promotionbench/internal/judge"
	"github.com/promotionbench/promotionbench/internal/ledger"
	"github.com/promotionbench/promotionbench/internal/llm"
	"github.com/promotionbench/promotionbench/internal/observability"
	"github.com/promotionbench/promotionbench/internal/outcome"
	"github.com/promotionbench/promotionbench/internal/prompts"
	"github.com/promotionbench/promotionbench/internal/results"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/promotionbench/promotionbench/internal/scoring"
	"github.com/promotionbench/promotionbench/internal/trajectory"
	"github.com/promotionbench/promotionbench/internal/transcript"
)

const (
	// defaultTranscriptDir is where live-run transcripts are recorded.
	defaultTranscriptDir = "transcripts"
	// defaultDashboardPath is the published dashboard JSON location.
	defaultDashboardPath = "docs/data/results.json"

	// memoryTranscriptChars bounds the transcript excerpt summarized
	// into per-character memories.
	memoryTranscriptChars = 3000
	// memoryTemperature keeps memory summaries factual.
	memoryTemperature float32 = 0.2
)

// Event is a progress update emitted while a run executes.
type Event struct {
	RunID   string `json:"run_id,omitempty"`
	Phase   int    `json:"phase,omitempty"`
	Step    string `json:"step"`
	Message string `json:"message,omitempty"`
}

// ProgressCallback is called as pipeline progress occurs.
type ProgressCallback func(Event)

// RunOptions holds configuration for running the benchmark.
type RunOptions struct {
	RunID   string
	Variant string
	Phases  []int // empty means the full nine-phase arc

	Resume   bool
	ResumeID string
	Fresh    bool

	Judges int
	Seed   int64 // 0 derives per-phase event seeds from the run ID

	APIKey        string
	StoreDSN      string
	CheckpointDir string
	TranscriptDir string
	ReplayDir     string // replay recorded transcripts instead of simulating
	DashboardPath string

	Verbose bool

	Out        io.Writer         // defaults to stdout
	Client     llm.Client        // injected in tests; built from APIKey otherwise
	Source     transcript.Source // overrides live/replay source selection
	OnProgress ProgressCallback
}

// Summary is the result of a completed run.
type Summary struct {
	RunID       string
	Variant     scenario.Variant
	Evaluations []scoring.PhaseEvaluation
	Outcome     *outcome.Outcome
	Elapsed     time.Duration
	Dashboard   string
}

// runner carries the state one run accumulates across phases.
type runner struct {
	opts    RunOptions
	out     io.Writer
	printer *observability.Printer

	scn        *scenario.Scenario
	client     llm.Client
	source     transcript.Source
	classifier *classify.Classifier
	panel      *judge.Panel
	store      results.Store
	manager    checkpoint.Manager

	runID    string
	seed     int64
	led      *ledger.Ledger
	evals    []scoring.PhaseEvaluation
	memories map[string][]string
	cp       *checkpoint.Checkpoint
	elapsed  map[int]float64
	started  time.Time
}

// Run executes the benchmark: resolves resume state, runs the selected
// phases in order, and finishes with outcome resolution and exports. A
// phase failure halts the run; completed state stays checkpointed and
// the returned error carries resume instructions.
func Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	r := &runner{
		opts:     opts,
		out:      out,
		printer:  observability.NewPrinter(out),
		manager:  checkpoint.NewManager(opts.CheckpointDir),
		memories: make(map[string][]string),
		elapsed:  make(map[int]float64),
		started:  time.Now(),
	}

	cp, err := r.resolveCheckpoint()
	if err != nil {
		return nil, err
	}

	variantName := opts.Variant
	if cp != nil {
		if variantName != "" && variantName != cp.Variant {
			return nil, fmt.Errorf("checkpoint %s was started with variant %q, cannot resume as %q",
				cp.RunID, cp.Variant, variantName)
		}
		variantName = cp.Variant
	}
	variant, err := scenario.ParseVariant(variantName)
	if err != nil {
		return nil, err
	}
	r.scn, err = scenario.New(variant)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble scenario: %w", err)
	}

	judges := opts.Judges
	r.seed = opts.Seed
	if cp != nil {
		r.runID = cp.RunID
		if judges == 0 {
			judges = cp.RunMeta.Judges
		}
		if r.seed == 0 {
			r.seed = cp.RunMeta.Seed
		}
	} else {
		r.runID = opts.RunID
		if r.runID == "" {
			r.runID = newRunID(variant)
		}
	}
	if judges < 1 {
		judges = 1
	}

	selected, err := selectPhases(r.scn, opts.Phases)
	if err != nil {
		return nil, err
	}

	ownsClient := opts.Client == nil
	if err := r.setupClient(ctx); err != nil {
		return nil, err
	}
	if ownsClient {
		defer r.client.Close()
	}

	r.classifier = classify.New(r.client, scenario.PlayerName)
	player := r.scn.Player()
	bench := make([]*judge.Judge, judges)
	for i := range bench {
		bench[i] = judge.New(r.client, player.Name, player.Title)
	}
	r.panel = judge.NewPanel(bench...)

	r.source = opts.Source
	if r.source == nil {
		if opts.ReplayDir != "" {
			r.source = transcript.FileSource{Dir: opts.ReplayDir}
		} else {
			r.source = dialogue.NewSimulator(r.client, r.scn)
		}
	}

	r.openStore(ctx, string(variant))
	if r.store != nil {
		defer r.store.Close()
	}

	if cp != nil {
		r.restore(cp)
	} else {
		r.led = ledger.New(r.scn.NPCNames())
		// Every agent opens the run knowing the shared company facts.
		for _, c := range r.scn.Cast {
			r.memories[c.Name] = scenario.SharedMemories()
		}
		r.cp = &checkpoint.Checkpoint{
			RunID:   r.runID,
			Variant: string(variant),
			State:   r.led,
			RunMeta: checkpoint.Meta{
				StartedAt: time.Now().UTC(),
				Model:     r.client.GetModel(llm.TierStandard),
				Judges:    judges,
				Seed:      opts.Seed,
			},
		}
		r.saveCheckpoint()
	}

	remaining := r.withoutCompleted(selected)

	r.emit(0, "run_start", fmt.Sprintf("%d phases to run", len(remaining)))
	if len(remaining) > 0 {
		r.printer.PrintRunStart(remaining, len(r.scn.Cast), uniqueModels(r.client))
	} else {
		fmt.Fprintln(r.out, "All selected phases already completed.")
	}

	for _, ph := range remaining {
		if err := r.runPhase(ctx, ph); err != nil {
			if r.store != nil {
				if serr := r.store.CompleteRun(ctx, r.runID, "failed"); serr != nil {
					log.Printf("warning: failed to mark run failed: %v", serr)
				}
			}
			r.printer.PrintFinalSummary(r.evals, []int{ph.Number}, time.Since(r.started), nil)
			return nil, fmt.Errorf("phase %d (%s) failed: %w; completed phases are checkpointed, rerun with --resume-id %s to continue",
				ph.Number, ph.Name, err, r.runID)
		}
	}

	return r.finish(ctx)
}

// resolveCheckpoint applies the resume flags: fresh ignores checkpoints,
// a resume ID loads that run, plain resume loads the latest.
func (r *runner) resolveCheckpoint() (*checkpoint.Checkpoint, error) {
	if r.opts.Fresh {
		if r.opts.Resume || r.opts.ResumeID != "" {
			return nil, fmt.Errorf("cannot combine --fresh with --resume or --resume-id")
		}
		return nil, nil
	}

	switch {
	case r.opts.ResumeID != "":
		cp, err := r.manager.Load(r.opts.ResumeID)
		if err != nil {
			return nil, err
		}
		if cp == nil {
			return nil, fmt.Errorf("no checkpoint found for run %q", r.opts.ResumeID)
		}
		return cp, nil
	case r.opts.Resume:
		cp, err := r.manager.FindLatest()
		if err != nil {
			return nil, err
		}
		if cp == nil {
			return nil, fmt.Errorf("no checkpoint to resume; start a fresh run instead")
		}
		return cp, nil
	}
	return nil, nil
}

func (r *runner) setupClient(ctx context.Context) error {
	if r.opts.Client != nil {
		r.client = r.opts.Client
		return nil
	}
	client, err := llm.NewClient(ctx, nil, r.opts.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	r.client = client
	return nil
}

// openStore connects the optional results store. A store failure never
// blocks the run; it warns and continues without persistence.
func (r *runner) openStore(ctx context.Context, variant string) {
	if r.opts.StoreDSN == "" {
		return
	}
	store, err := results.Open(ctx, r.opts.StoreDSN)
	if err != nil {
		log.Printf("warning: failed to open results store: %v", err)
		fmt.Fprintln(r.out, "Continuing without results persistence...")
		return
	}
	if err := store.CreateRun(ctx, r.runID, variant); err != nil {
		log.Printf("warning: failed to register run: %v", err)
	}
	if r.opts.Verbose {
		fmt.Fprintln(r.out, "[VERBOSE] Connected to results store")
	}
	r.store = store
}

// restore rebuilds in-memory run state from a checkpoint.
func (r *runner) restore(cp *checkpoint.Checkpoint) {
	r.cp = cp
	if cp.State != nil {
		r.led = cp.Ledger()
	} else {
		// Snapshots that predate state tracking still need counterparts.
		r.led = ledger.New(r.scn.NPCNames())
	}
	r.evals = cp.Evaluations()
	if cp.MemorySummaries != nil {
		r.memories = cp.MemorySummaries
	}
	fmt.Fprintf(r.out, "Resuming run %s (%d phases completed, last saved %s)\n",
		cp.RunID, len(cp.CompletedPhases), cp.LastSaved.Format(time.RFC3339))
}

// runPhase executes one phase end to end. Any error halts the run; the
// checkpoint on disk still describes the state before this phase, so a
// resumed run replays it cleanly.
func (r *runner) runPhase(ctx context.Context, ph scenario.Phase) error {
	start := time.Now()
	r.printer.PrintPhaseHeader(ph)
	r.emit(ph.Number, "phase_start", ph.Name)

	// Roll one-time world events into the premises.
	var fired []events.Event
	for _, ev := range events.Roll(ph.Number, r.eventSeed(ph.Number)) {
		if r.led.EventFired(ev.Name) {
			continue
		}
		r.led.MarkEventFired(ev.Name)
		fired = append(fired, ev)
		r.emit(ph.Number, "event", ev.Name)
		if r.opts.Verbose {
			fmt.Fprintf(r.out, "  [VERBOSE] Event fired: %s\n", ev.Name)
		}
	}
	premises := events.InjectIntoPremises(ph.Premises, fired)

	contexts := dialogue.AssembleContexts(ph, premises, r.memories,
		r.led.RelationshipContext(), r.led.ConsequencesFor(ph.Number))

	fmt.Fprintln(r.out, "  Running simulation...")
	raw, err := r.source.Transcript(ctx, transcript.Request{Phase: ph, Contexts: contexts})
	if err != nil {
		return fmt.Errorf("failed to obtain transcript: %w", err)
	}
	cleaned := transcript.Clean(raw)
	fmt.Fprintf(r.out, "  ✓ Phase complete (%d chars of transcript)\n", len(cleaned))
	r.emit(ph.Number, "transcript", fmt.Sprintf("%d chars", len(cleaned)))

	fmt.Fprintf(r.out, "  Scoring %s's performance...\n", firstName(r.scn.Player().Name))
	applied, err := r.classifyDecisions(ctx, ph, cleaned)
	if err != nil {
		return err
	}

	var prev *scoring.PhaseScores
	if len(r.evals) > 0 {
		prev = &r.evals[len(r.evals)-1].Scores
	}
	assessment, spread, err := r.panel.Assess(ctx, cleaned, ph.Number, ph.Name, ph.Research, prev)
	if err != nil {
		return fmt.Errorf("failed to judge phase: %w", err)
	}
	if r.opts.Verbose && spread != "" {
		fmt.Fprintf(r.out, "  [VERBOSE] Inter-rater: %s\n", spread)
	}

	combined := scoring.Combine(r.led.Scores(), assessment.Modifiers)
	clamped, err := trajectory.Clamp(ph.Number, combined)
	if err != nil {
		return fmt.Errorf("failed to calibrate phase scores: %w", err)
	}

	ev := scoring.PhaseEvaluation{
		Phase:         ph.Number,
		Name:          ph.Name,
		Scores:        clamped,
		Relationships: assessment.Relationships,
		KeyDecisions:  assessment.KeyDecisions,
		Narrative:     assessment.Narrative,
		Reasoning:     assessment.Reasoning,
		Decisions:     applied,
		InterRater:    spread,
	}
	r.evals = append(r.evals, ev)

	r.updateMemories(ctx, ph, cleaned)

	if r.store != nil {
		if err := r.store.SavePhase(ctx, r.runID, ev, time.Since(start)); err != nil {
			log.Printf("warning: failed to save phase %d results: %v", ph.Number, err)
		}
	}

	r.saveTranscript(ph, raw)

	r.cp.PhaseEvaluations = r.evals
	r.cp.MemorySummaries = r.memories
	r.cp.State = r.led
	r.cp.MarkCompleted(ph.Number)
	r.saveCheckpoint()

	r.elapsed[ph.Number] = time.Since(start).Seconds()
	r.printer.PrintScorecard(ev)
	r.emit(ph.Number, "phase_complete", fmt.Sprintf("readiness %d%%", ev.Scores.PromotionReadiness()))
	return nil
}

// classifyDecisions runs the decision classifier over this phase's
// catalog entries and applies confident results to the ledger in ID
// order. Returns the applied option per decision point.
func (r *runner) classifyDecisions(ctx context.Context, ph scenario.Phase, cleaned string) (map[string]string, error) {
	points := r.scn.Decisions.ForPhase(ph.Number)
	if len(points) == 0 {
		return nil, nil
	}

	classified, err := r.classifier.ClassifyAll(ctx, cleaned, points)
	if err != nil {
		return nil, err
	}

	applied := make(map[string]string)
	for _, dp := range points {
		res := classified[dp.ID]
		if r.opts.Verbose && res.Enacted() {
			fmt.Fprintf(r.out, "  [VERBOSE] Decision %s → %s (confidence %.2f)\n", dp.ID, res.OptionID, res.Confidence)
		}
		if !res.Applies() {
			continue
		}
		if err := r.led.ApplyDecision(dp, res.OptionID); err != nil {
			log.Printf("warning: failed to apply decision %s: %v", dp.ID, err)
			continue
		}
		applied[dp.ID] = res.OptionID
	}
	return applied, nil
}

// updateMemories generates a short factual summary of the phase for each
// participant, so later scenes remember what happened without carrying
// full history. Generation failures fall back to a bare marker.
func (r *runner) updateMemories(ctx context.Context, ph scenario.Phase, cleaned string) {
	template := prompts.MustGet("memory.json", "phase-summary")
	excerpt := transcript.Head(cleaned, memoryTranscriptChars)

	for _, name := range ph.Participants {
		prompt := prompts.Format(template, map[string]string{
			"Name":       name,
			"PhaseName":  ph.Name,
			"Date":       ph.Date,
			"Transcript": excerpt,
		})
		summary, err := r.client.GenerateContent(ctx, prompt, llm.TierLite,
			llm.WithTemperature(memoryTemperature))
		if err != nil {
			log.Printf("warning: failed to generate memory for %s: %v", name, err)
			r.memories[name] = append(r.memories[name],
				fmt.Sprintf("[Memory from %s] %s took place.", ph.Date, ph.Name))
			continue
		}
		r.memories[name] = append(r.memories[name],
			fmt.Sprintf("[Memory from %s] %s", ph.Date, strings.TrimSpace(summary)))
	}
}

// saveTranscript records the raw scene for later replay. Skipped when
// the run is itself replaying recordings.
func (r *runner) saveTranscript(ph scenario.Phase, raw string) {
	if r.opts.ReplayDir != "" {
		return
	}
	dir := r.opts.TranscriptDir
	if dir == "" {
		dir = defaultTranscriptDir
	}
	path, err := transcript.Save(dir, ph.Number, ph.Name, raw)
	if err != nil {
		log.Printf("warning: failed to save transcript: %v", err)
		return
	}
	fmt.Fprintf(r.out, "  ✓ Transcript saved: %s\n", path)
}

func (r *runner) saveCheckpoint() {
	if _, err := r.manager.Save(r.cp); err != nil {
		log.Printf("warning: failed to save checkpoint: %v", err)
	}
}

// finish resolves the career outcome from the last evaluation, persists
// it, exports the dashboard, and prints the final summary. The
// checkpoint is deleted only once the full arc is complete, so a
// partial-selection run can still be resumed later.
func (r *runner) finish(ctx context.Context) (*Summary, error) {
	var oc *outcome.Outcome
	if len(r.evals) > 0 {
		last := r.evals[len(r.evals)-1]
		resolved := outcome.Resolve(scenario.PlayerName, last.Scores.PromotionReadiness(), last.Scores.Ethics)
		oc = &resolved
		r.emit(last.Phase, "outcome", oc.FinalTitle)
	}

	if r.store != nil {
		if oc != nil {
			stored := results.StoredOutcome{
				Tier:         oc.Tier.Name,
				EthicsRating: oc.Ethics.Name,
				FinalTitle:   oc.FinalTitle,
				FinalComp:    oc.FinalCompensation,
				Narrative:    oc.Narrative,
			}
			if err := r.store.SaveOutcome(ctx, r.runID, stored); err != nil {
				log.Printf("warning: failed to save outcome: %v", err)
			}
		}
		if err := r.store.CompleteRun(ctx, r.runID, "completed"); err != nil {
			log.Printf("warning: failed to complete run: %v", err)
		}
	}

	dashboard := r.opts.DashboardPath
	if dashboard == "" {
		dashboard = defaultDashboardPath
	}
	meta := results.DashboardMeta{
		RunID:        r.runID,
		Variant:      string(r.scn.Variant),
		Model:        r.client.GetModel(llm.TierStandard),
		StartTime:    r.cp.RunMeta.StartedAt,
		TotalElapsed: time.Since(r.started),
		PhaseElapsed: r.elapsed,
	}
	if err := results.WriteDashboard(dashboard, r.scn, meta, r.evals, oc); err != nil {
		log.Printf("warning: failed to write dashboard: %v", err)
	} else {
		fmt.Fprintf(r.out, "\n✓ All phases complete! Dashboard data written to %s\n", dashboard)
	}

	if len(r.cp.CompletedPhases) == scenario.NumPhases {
		r.manager.Delete(r.runID)
	}

	r.printer.PrintFinalSummary(r.evals, nil, time.Since(r.started), oc)
	r.emit(0, "run_complete", r.runID)

	return &Summary{
		RunID:       r.runID,
		Variant:     r.scn.Variant,
		Evaluations: r.evals,
		Outcome:     oc,
		Elapsed:     time.Since(r.started),
		Dashboard:   dashboard,
	}, nil
}

func (r *runner) emit(phase int, step, message string) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(Event{RunID: r.runID, Phase: phase, Step: step, Message: message})
	}
}

// eventSeed derives the per-phase event seed: explicit seeds shift by
// phase so each phase rolls independently, otherwise the run ID decides.
func (r *runner) eventSeed(phase int) int64 {
	if r.seed != 0 {
		return r.seed + int64(phase)
	}
	return events.SeedFor(r.runID, phase)
}

// withoutCompleted drops phases the checkpoint already finished.
func (r *runner) withoutCompleted(selected []scenario.Phase) []scenario.Phase {
	if r.cp == nil || len(r.cp.CompletedPhases) == 0 {
		return selected
	}
	done := make(map[int]bool, len(r.cp.CompletedPhases))
	for _, p := range r.cp.CompletedPhases {
		done[p] = true
	}
	var remaining []scenario.Phase
	for _, ph := range selected {
		if !done[ph.Number] {
			remaining = append(remaining, ph)
		}
	}
	return remaining
}

// selectPhases resolves requested phase numbers to definitions in
// ascending order; an empty request selects the whole arc.
func selectPhases(scn *scenario.Scenario, numbers []int) ([]scenario.Phase, error) {
	if len(numbers) == 0 {
		out := make([]scenario.Phase, len(scn.Phases))
		copy(out, scn.Phases)
		return out, nil
	}

	sorted := append([]int(nil), numbers...)
	sort.Ints(sorted)

	var out []scenario.Phase
	seen := make(map[int]bool)
	for _, n := range sorted {
		if seen[n] {
			continue
		}
		seen[n] = true
		ph, ok := scn.Phase(n)
		if !ok {
			return nil, fmt.Errorf("unknown phase %d (valid: 1-%d)", n, scenario.NumPhases)
		}
		out = append(out, ph)
	}
	return out, nil
}

// newRunID builds a readable, unique run identifier.
func newRunID(variant scenario.Variant) string {
	return fmt.Sprintf("%s_%s_%s", time.Now().UTC().Format("2006-01-02"), variant, uuid.NewString()[:8])
}

func firstName(full string) string {
	if fields := strings.Fields(full); len(fields) > 0 {
		return fields[0]
	}
	return full
}

// uniqueModels counts the distinct models behind the client's tiers.
func uniqueModels(c llm.Client) int {
	set := make(map[string]struct{})
	for _, tier := range []llm.ModelTier{llm.TierLite, llm.TierStandard, llm.TierAdvanced} {
		if m := c.GetModel(tier); m != "" {
			set[m] = struct{}{}
		}
	}
	if len(set) == 0 {
		return 1
	}
	return len(set)
}
