package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pevans/chartfed/catalog"
	"github.com/pevans/chartfed/chart"
	"github.com/pevans/chartfed/config"
	"github.com/pevans/chartfed/fetch"
)

var chartsRefresh bool

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List known chart series",
	Args:  cobra.NoArgs,
	RunE:  runCharts,
}

func init() {
	chartsCmd.Flags().BoolVar(&chartsRefresh, "refresh", false, "re-scrape the charts index before listing")
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cat, err := catalog.NewStore(cfg.Storage.CatalogDSN)
	if err != nil {
		return err
	}
	defer cat.Close()

	if chartsRefresh {
		client := fetch.New(cfg.Timeout(), cfg.Fetch.MaxRetries, cfg.Fetch.UserAgent)
		slugs, err := catalog.Slugs(cmd.Context(), client, chart.DefaultBaseURL)
		if err != nil {
			return err
		}
		added, err := cat.Refresh(slugs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Discovered %d new chart series\n", added)
	}

	slugs, err := cat.SlugList()
	if err != nil {
		return err
	}
	if len(slugs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No known charts; run with --refresh to scrape the index")
		return nil
	}
	for _, slug := range slugs {
		fmt.Fprintln(cmd.OutOrStdout(), slug)
	}
	return nil
}
