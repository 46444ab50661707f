package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pevans/chartfed/chart"
	"github.com/pevans/chartfed/config"
	"github.com/pevans/chartfed/store"
)

var (
	yearEndYear string
	yearEndJSON bool
	yearEndSave bool
)

var yearEndCmd = &cobra.Command{
	Use:   "yearend <name>",
	Short: "Fetch one year-end chart snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runYearEnd,
}

func init() {
	yearEndCmd.Flags().StringVar(&yearEndYear, "year", "", "chart year as YYYY or YYYY-MM-DD (default: previous year)")
	yearEndCmd.Flags().BoolVar(&yearEndJSON, "json", false, "print the canonical JSON dump")
	yearEndCmd.Flags().BoolVar(&yearEndSave, "save", false, "save the snapshot to the snapshot store")
	rootCmd.AddCommand(yearEndCmd)
}

func runYearEnd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	y, err := chart.NewYearEnd(args[0], yearEndYear, chartOptions(cfg))
	if err != nil {
		return err
	}

	if yearEndSave {
		snapshots, err := store.NewSnapshotStore(cfg.Storage.SnapshotsDir)
		if err != nil {
			return err
		}
		name, err := snapshots.SaveYearEnd(y)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", name)
	}

	if yearEndJSON {
		out, err := y.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), y)
	return nil
}
