package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nfrtrace/internal/store"
	"nfrtrace/internal/trace"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := store.Open(appCfg.History.Path)
		if err != nil {
			return withExitCode(ExitConfigError, fmt.Errorf("open history: %w", err))
		}
		defer db.Close()

		runs, err := db.ListRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no runs)")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tVARIANT\tTHRESHOLD\tLINKS\tRECALL\tSOURCE")
		for _, r := range runs {
			recall := "-"
			if r.Metrics != nil {
				recall = fmt.Sprintf("%.3f", r.Metrics.Recall)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\t%s\t%s\n",
				r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Variant, r.Threshold, r.Links, recall, r.Source)
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one recorded run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		db, err := store.Open(appCfg.History.Path)
		if err != nil {
			return withExitCode(ExitConfigError, fmt.Errorf("open history: %w", err))
		}
		defer db.Close()

		rec, err := db.GetRun(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return withExitCode(ExitDataError, fmt.Errorf("run %d not found", id))
		}
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			store.RunRecord
			Pairs []trace.Link `json:"pairs"`
		}{rec, trace.LinkList(rec.Trace)})
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to list")
	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
