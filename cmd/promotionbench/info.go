package main

import (
	"fmt"
	"os"

	"github.com/promotionbench/promotionbench/internal/events"
	"github.com/promotionbench/promotionbench/internal/observability"
	"github.com/promotionbench/promotionbench/internal/outcome"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/spf13/cobra"
)

var infoCommand = &cobra.Command{
	Use:   "info",
	Short: "Show the simulation content: company, cast, phases, decisions, events",
	RunE:  infoCmd,
}

func init() {
	rootCmd.AddCommand(infoCommand)
}

func infoCmd(_ *cobra.Command, _ []string) error {
	// Assembling the scenario validates the decision catalog, so a
	// content bug surfaces here instead of mid-run.
	scn, err := scenario.New(scenario.VariantNeutral)
	if err != nil {
		return fmt.Errorf("failed to assemble scenario: %w", err)
	}

	fmt.Println("\nPromotionBench — AI Career Simulation")

	player := scn.Player()
	fmt.Println("\nCompany")
	fmt.Printf("  %-15s %s\n", "Company:", scenario.CompanyName)
	fmt.Printf("  %-15s %s\n", "Industry:", scenario.Industry)
	fmt.Printf("  %-15s %s\n", "HQ:", scenario.Headquarters)
	fmt.Printf("  %-15s $%dM\n", "ARR:", scenario.ARR/1_000_000)
	fmt.Printf("  %-15s %s, %s (target: %s)\n", "Protagonist:", player.Name, player.Title, scenario.TargetTitle)
	fmt.Printf("  %-15s $%d\n", "Starting comp:", scenario.StartingCompensation)

	fmt.Println("\nCast")
	for _, c := range scn.Cast {
		role := "NPC"
		if c.IsPlayer {
			role = "⭐ PLAYER"
		}
		fmt.Printf("  %-18s %-38s %s\n", c.Name, c.Title, role)
	}

	fmt.Println("\nPhases")
	for _, ph := range scn.Phases {
		points := scn.Decisions.ForPhase(ph.Number)
		fmt.Printf("  %d. %s  %s (%s, %d participants, %d decision points)\n",
			ph.Number, ph.Date, ph.Name, ph.Quarter, len(ph.Participants), len(points))
	}

	fmt.Println("\nDecision points")
	for _, dp := range scn.Decisions.All() {
		fmt.Printf("  %-16s phase %d  %s (%d options)\n", dp.ID, dp.Phase, dp.Name, len(dp.Options))
	}

	fmt.Println("\nRandom events")
	for _, ev := range events.Catalog() {
		fmt.Printf("  %-32s phases %d-%d  p=%.2f\n", ev.Name, ev.MinPhase, ev.MaxPhase, ev.Probability)
	}

	fmt.Println()
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintOutcomeTiers(outcome.Tiers())

	return nil
}
