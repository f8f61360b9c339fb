// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quizdoc/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs or show one in full",
	Long: `History reads the run database written by "process --history". Without
arguments it lists recent runs, newest first. With a run ID it prints that
run's full report as YAML, including each image's error or formatted text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig(viper.GetViper(), loadedSecrets)

		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 1 {
			report, err := store.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(report)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		printRuns(cmd.OutOrStdout(), runs)
		return nil
	},
}

func printRuns(w io.Writer, runs []history.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  formatted: %d, failed: %d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Formatted, r.Failed, r.Document)
	}
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")
	historyCmd.Flags().String("db", "", "history database path (default: quizdoc.db)")
	viper.BindPFlag("history.path", historyCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(historyCmd)
}
