package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/promotionbench/promotionbench/internal/outcome"
	"github.com/promotionbench/promotionbench/internal/report"
	"github.com/promotionbench/promotionbench/internal/results"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/spf13/cobra"
)

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Compute the PB Score for a stored run",
	Long: `Scores a stored run: PB Score breakdown, final dimensions, outcome, and emergent behaviors. Can save the run as a baseline (with a markdown report) or compare it against a saved baseline.

Runs are read from the results store (--store or PROMOTIONBENCH_STORE).`,
	RunE: reportCmd,
}

var (
	reportRunID       string
	reportStore       string
	reportBaselineID  string
	reportSave        bool
	reportBaselineDir string
	reportDir         string
)

func init() {
	reportCommand.Flags().StringVar(&reportRunID, "run", "", "Run ID to report on (default: most recent stored run)")
	reportCommand.Flags().StringVar(&reportStore, "store", "", "Results store DSN (optional, defaults to PROMOTIONBENCH_STORE env var)")
	reportCommand.Flags().StringVar(&reportBaselineID, "baseline", "", "Baseline run ID to compare this run against")
	reportCommand.Flags().BoolVar(&reportSave, "save-baseline", false, "Save this run to the baseline registry and write its markdown report")
	reportCommand.Flags().StringVar(&reportBaselineDir, "baseline-dir", "", "Baseline registry directory (default: baselines)")
	reportCommand.Flags().StringVar(&reportDir, "report-dir", "reports", "Directory for markdown reports")

	rootCmd.AddCommand(reportCommand)
}

func reportCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Open the results store
	dsn := reportStore
	if dsn == "" {
		dsn = os.Getenv("PROMOTIONBENCH_STORE")
	}
	if dsn == "" {
		return fmt.Errorf("PROMOTIONBENCH_STORE environment variable or --store flag is required")
	}

	store, err := results.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer store.Close()

	// Step 2: Load the run (most recent when --run is not given)
	runID := reportRunID
	if runID == "" {
		recent, err := store.ListRuns(ctx, 1)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(recent) == 0 {
			return fmt.Errorf("no runs stored yet; complete a run first")
		}
		runID = recent[0].RunID
	}

	rec, err := store.LoadRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("no stored run %q", runID)
	}
	if len(rec.Evaluations) == 0 {
		return fmt.Errorf("run %s has no scored phases to report on", rec.RunID)
	}

	// Step 3: Rebuild the run's baseline record. The outcome is resolved
	// from the final phase scores, which reproduces what the run stored.
	variant, err := scenario.ParseVariant(rec.Variant)
	if err != nil {
		return fmt.Errorf("failed to parse stored variant: %w", err)
	}
	scn, err := scenario.New(variant)
	if err != nil {
		return fmt.Errorf("failed to assemble scenario: %w", err)
	}

	var oc *outcome.Outcome
	if rec.Outcome != nil {
		final := rec.Evaluations[len(rec.Evaluations)-1].Scores
		resolved := outcome.Resolve(scenario.PlayerName, final.PromotionReadiness(), final.Ethics)
		oc = &resolved
	}

	var elapsed time.Duration
	for _, seconds := range rec.Elapsed {
		elapsed += time.Duration(seconds * float64(time.Second))
	}

	current := report.BuildBaseline(scn, report.RunInfo{
		RunID:   rec.RunID,
		RunDate: rec.StartedAt,
		Version: results.SchemaVersion,
		Elapsed: elapsed,
	}, rec.Evaluations, oc)

	// Step 4: Print the score breakdown
	printReport(rec, current, oc)

	// Step 5: Save as baseline if requested
	if reportSave {
		registry := report.NewRegistry(reportBaselineDir)
		path, err := registry.Save(current)
		if err != nil {
			return fmt.Errorf("failed to save baseline: %w", err)
		}
		fmt.Printf("\n✓ Baseline saved: %s\n", path)

		mdPath, err := report.SaveMarkdown(current, reportDir)
		if err != nil {
			return fmt.Errorf("failed to write markdown report: %w", err)
		}
		fmt.Printf("✓ Report written: %s\n", mdPath)
	}

	// Step 6: Compare against a saved baseline if requested
	if reportBaselineID != "" {
		registry := report.NewRegistry(reportBaselineDir)
		base, err := registry.Load(reportBaselineID)
		if err != nil {
			return fmt.Errorf("failed to load baseline: %w", err)
		}
		if base == nil {
			return fmt.Errorf("no baseline found for run %q", reportBaselineID)
		}

		fmt.Printf("\nCompared against %s (%s, PB %d):\n", base.RunID, base.Variant, base.PB.Total)
		for _, d := range report.Compare(current, *base) {
			fmt.Printf("  %-22s %6d -> %6d  (%+d)\n", d.Metric, d.Baseline, d.Current, d.Change)
		}
	}

	return nil
}

func printReport(rec *results.RunRecord, b report.Baseline, oc *outcome.Outcome) {
	fmt.Println("\nPromotionBench Report")
	fmt.Printf("Run: %s (%s, %s, %d phases)\n", rec.RunID, rec.Variant, rec.Status, b.TotalPhases)

	fmt.Printf("\nPB Score: %d/1000 (%s)\n", b.PB.Total, b.PB.TierLabel)
	fmt.Printf("  Career outcome:  %3d/400\n", b.PB.CareerOutcome)
	fmt.Printf("  Integrity:       %3d/200\n", b.PB.Integrity)
	fmt.Printf("  Influence:       %3d/300\n", b.PB.Influence)
	fmt.Printf("  Balance:         %3d/100\n", b.PB.Balance)
	fmt.Printf("  %s\n", b.PB.Interpretation)

	fmt.Printf("\nFinal state: %d%% readiness (V:%d C:%d R:%d L:%d E:%d)\n",
		b.FinalReadiness, b.FinalVisibility, b.FinalCompetence,
		b.FinalRelationships, b.FinalLeadership, b.FinalEthics)
	if oc != nil {
		fmt.Printf("Outcome: %s %s at $%d (%s ethics)\n",
			oc.Tier.Emoji, oc.FinalTitle, oc.FinalCompensation, oc.Ethics.Name)
	} else {
		fmt.Printf("Outcome: none recorded (run status %q)\n", rec.Status)
	}

	if len(b.EmergentBehaviors) > 0 {
		fmt.Printf("\nEmergent behaviors:\n")
		for _, behavior := range b.EmergentBehaviors {
			fmt.Printf("  [phase %d] %s (%s): %s\n",
				behavior.Phase, behavior.Category, behavior.Significance, behavior.Description)
		}
	}
}
