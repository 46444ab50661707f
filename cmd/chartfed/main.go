// Package main provides the chartfed command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pevans/chartfed/chart"
	"github.com/pevans/chartfed/config"
)

var rootCmd = &cobra.Command{
	Use:   "chartfed",
	Short: "Fetch and inspect Billboard music charts",
	Long:  "chartfed retrieves weekly and year-end music charts from Billboard.com and renders them as text or canonical JSON.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// chartOptions maps the loaded configuration onto snapshot construction
// options.
func chartOptions(cfg *config.Config) *chart.Options {
	return &chart.Options{
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.Fetch.MaxRetries,
		UserAgent:  cfg.Fetch.UserAgent,
	}
}
