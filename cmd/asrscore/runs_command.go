package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asrscore/internal/splitstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Evaluation run history",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded evaluation runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := splitstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if useJSON(jsonFlag) {
				return writeJSON(cmd, runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			tbl := newReportTable(col("RUN"), col("SPLIT"), col("KIND"), col("ENGINE"),
				numCol("WER"), numCol("CER"), numCol("UTTS"), numCol("EXCL"), col("CREATED"))
			for _, run := range runs {
				tbl.addRow(shortID(run.ID), run.Split, run.Kind, run.Engine,
					fmtRate(run.WER), fmtRate(run.CER),
					fmtCount(run.NUtterances), fmtCount(run.NExcluded),
					fmtTimestamp(run.CreatedAt))
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON output")
	return cmd
}
