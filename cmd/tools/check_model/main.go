// Command check_model is a manual preflight for the Gemini model tiers.
// It verifies that every configured model responds before a long
// benchmark run is started.
//
// Usage:
//
//	go run cmd/tools/check_model/main.go
//
// Requires GEMINI_API_KEY environment variable to be set.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/promotionbench/promotionbench/internal/llm"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "ERROR: GEMINI_API_KEY environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println("=== Model Tier Preflight ===")
	fmt.Println()

	tiers := []llm.ModelTier{llm.TierLite, llm.TierStandard, llm.TierAdvanced}
	for i, tier := range tiers {
		fmt.Printf("Check %d: %s tier (%s)...\n", i+1, tier, client.GetModel(tier))

		start := time.Now()
		reply, err := client.GenerateContent(ctx, "Reply with the single word: ready", tier)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %s tier: %v\n", tier, err)
			os.Exit(1)
		}
		fmt.Printf("  ✓ %q in %.1fs\n", strings.TrimSpace(reply), time.Since(start).Seconds())
	}

	fmt.Println("\n=== All Tiers Ready ===")
}
