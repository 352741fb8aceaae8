package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/promotionbench/promotionbench/internal/config"
	"github.com/promotionbench/promotionbench/internal/pipeline"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the multi-phase career simulation end-to-end",
	Long: `Orchestrates a full benchmark run: dialogue -> decision classification -> judge panel scoring -> trajectory calibration -> checkpoint, phase by phase, then resolves the final career outcome.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runSimulationCmd,
}

var (
	runConfigPath    string
	runPhases        []int
	runVariant       string
	runResume        bool
	runResumeID      string
	runFresh         bool
	runJudges        int
	runSeed          int64
	runAPIKey        string
	runStore         string
	runCheckpointDir string
	runTranscripts   string
	runVerbose       bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().IntSliceVar(&runPhases, "phases", nil, "Comma-separated phase numbers to run, e.g. 1,2,3 (default: all nine)")
	runCommand.Flags().StringVar(&runVariant, "variant", "", "Protagonist variant: neutral or ruthless")
	runCommand.Flags().BoolVar(&runResume, "resume", false, "Resume the most recent checkpointed run")
	runCommand.Flags().StringVar(&runResumeID, "resume-id", "", "Resume a specific run by ID")
	runCommand.Flags().BoolVar(&runFresh, "fresh", false, "Ignore existing checkpoints and start a new run")
	runCommand.Flags().IntVar(&runJudges, "judges", 0, "Number of judges on the scoring panel (1-5)")
	runCommand.Flags().Int64Var(&runSeed, "seed", 0, "Seed for random event rolls (0 derives per-phase seeds from the run ID)")
	runCommand.Flags().StringVar(&runCheckpointDir, "checkpoint-dir", "", "Directory for run checkpoints")
	runCommand.Flags().StringVar(&runTranscripts, "transcripts", "", "Replay recorded transcripts from this directory instead of simulating")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Results store DSN for run persistence
	runCommand.Flags().StringVar(&runStore, "store", "", "Results store DSN: postgres:// URL or SQLite file path (optional, defaults to PROMOTIONBENCH_STORE env var)")

	rootCmd.AddCommand(runCommand)
}

func runSimulationCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("phases") {
		cfg.Phases = runPhases
	}
	if cmd.Flags().Changed("variant") {
		cfg.Variant = runVariant
	}
	if cmd.Flags().Changed("judges") {
		cfg.Judges = runJudges
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = runSeed
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("store") {
		cfg.Store = runStore
	}
	if cmd.Flags().Changed("checkpoint-dir") {
		cfg.CheckpointDir = runCheckpointDir
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply env fallbacks, then defaults for unset values.
	// Variant and judges stay empty here so a resumed run can inherit
	// them from its checkpoint.
	cfg.ApplyEnv()
	defaults := config.Config{
		CheckpointDir: "checkpoints",
		TranscriptDir: "transcripts",
		DashboardPath: "docs/data/results.json",
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate
	if err := cfg.Validate(); err != nil {
		return err
	}
	if runFresh && (runResume || runResumeID != "") {
		return fmt.Errorf("--fresh cannot be combined with --resume or --resume-id")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 5: Mirror log output to simulation.log alongside stderr
	logFile, err := os.OpenFile("simulation.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Printf("Warning: Failed to open simulation.log: %v\n", err)
		fmt.Println("Continuing with stderr logging only...")
	} else {
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	}

	// Step 6: Announce the run variant. Resumed runs announce themselves
	// once the checkpoint tells us which variant they were started with.
	fmt.Println("\nPromotionBench — Multi-Phase Simulation")
	if !runResume && runResumeID == "" {
		variant, err := scenario.ParseVariant(cfg.Variant)
		if err != nil {
			return fmt.Errorf("failed to parse variant: %w", err)
		}
		if variant == scenario.VariantRuthless {
			scn, err := scenario.New(variant)
			if err != nil {
				return fmt.Errorf("failed to assemble scenario: %w", err)
			}
			fmt.Println("  ⚠ Running RUTHLESS variant (biased goal: 'at any cost')")
			fmt.Printf("  Riley goal: %.60s...\n", scn.Player().Goal)
		} else {
			fmt.Println("  ✓ Running NEUTRAL variant (balanced goal: observe emergent behavior)")
		}
	}

	opts := pipeline.RunOptions{
		Variant:       cfg.Variant,
		Phases:        cfg.Phases,
		Resume:        runResume,
		ResumeID:      runResumeID,
		Fresh:         runFresh,
		Judges:        cfg.Judges,
		Seed:          cfg.Seed,
		APIKey:        cfg.APIKey,
		StoreDSN:      cfg.Store,
		CheckpointDir: cfg.CheckpointDir,
		TranscriptDir: cfg.TranscriptDir,
		ReplayDir:     runTranscripts,
		DashboardPath: cfg.DashboardPath,
		Verbose:       cfg.Verbose,
	}

	_, err = pipeline.Run(ctx, opts)
	return err
}
