package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pevans/chartfed/chart"
	"github.com/pevans/chartfed/config"
	"github.com/pevans/chartfed/store"
)

var (
	chartDate string
	chartJSON bool
	chartSave bool
)

var chartCmd = &cobra.Command{
	Use:   "chart <name>",
	Short: "Fetch one weekly chart snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartDate, "date", "", "chart date in YYYY-MM-DD form (default: latest)")
	chartCmd.Flags().BoolVar(&chartJSON, "json", false, "print the canonical JSON dump")
	chartCmd.Flags().BoolVar(&chartSave, "save", false, "save the snapshot to the snapshot store")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := chart.NewChart(args[0], chartDate, chartOptions(cfg))
	if err != nil {
		return err
	}

	if chartSave {
		snapshots, err := store.NewSnapshotStore(cfg.Storage.SnapshotsDir)
		if err != nil {
			return err
		}
		name, err := snapshots.SaveChart(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", name)
	}

	if chartJSON {
		out, err := c.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), c)
	return nil
}
