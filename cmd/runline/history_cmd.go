package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/runline/internal/history"
)

var (
	historyJob   string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously emitted events from the history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("RUNLINE_DATABASE_URL is required for history")
		}

		store, err := history.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		events, err := store.ListEvents(cmd.Context(), history.Filter{
			Job:   historyJob,
			Limit: historyLimit,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(events)
			return nil
		}
		printHistoryTable(events)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyJob, "job", "", "filter by job name")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum events to list (0 = all)")
}
