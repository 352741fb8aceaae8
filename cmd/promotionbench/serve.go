package main

import (
	"context"
	"fmt"
	"os"

	"github.com/promotionbench/promotionbench/internal/server"
	"github.com/spf13/cobra"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored results over HTTP",
	Long: `Start the local results viewer: a JSON API over the results store plus the static dashboard site.

Runs are read from the results store (--store or PROMOTIONBENCH_STORE).`,
	RunE: serveCmd,
}

var (
	servePort  int
	serveStore string
	serveDocs  string
)

func init() {
	serveCommand.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCommand.Flags().StringVar(&serveStore, "store", "", "Results store DSN (optional, defaults to PROMOTIONBENCH_STORE env var)")
	serveCommand.Flags().StringVar(&serveDocs, "docs", "docs", "Dashboard static site directory (empty string disables it)")

	rootCmd.AddCommand(serveCommand)
}

func serveCmd(_ *cobra.Command, _ []string) error {
	dsn := serveStore
	if dsn == "" {
		dsn = os.Getenv("PROMOTIONBENCH_STORE")
	}
	if dsn == "" {
		return fmt.Errorf("PROMOTIONBENCH_STORE environment variable or --store flag is required")
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:     servePort,
		StoreDSN: dsn,
		DocsDir:  serveDocs,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
