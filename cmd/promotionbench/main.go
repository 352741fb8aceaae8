// Package main provides the entry point for the PromotionBench simulation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promotionbench",
	Short: "Multi-phase AI career simulation benchmark",
	Long:  "PromotionBench drops an AI protagonist into nine phases of corporate life at MidwestTech Solutions, scores each phase with an LLM judge panel, and resolves the career outcome the trajectory earned.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
