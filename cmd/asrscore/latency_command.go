package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"asrscore/internal/latency"
	"asrscore/internal/logging"
	"asrscore/internal/manifest"
	"asrscore/internal/services"
	"asrscore/internal/splitstore"
)

func newLatencyCommand(ctx *commandContext) *cobra.Command {
	var splitName string
	var partialsPath string
	var speechStartsPath string
	var speechStartColumn string
	var finalEvent string
	var breakdown bool
	var jsonFlag bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "latency",
		Short: "Compute streaming latency metrics from partial results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runID := uuid.NewString()
			runCtx := services.WithRunID(cmd.Context(), runID)
			cmd.SetContext(runCtx)
			logger := logging.WithContext(runCtx, ctx.ensureLogger())

			streams, err := latency.ReadPartials(partialsPath)
			if err != nil {
				return err
			}
			column := speechStartColumn
			if column == "" {
				column = cfg.Latency.SpeechStartColumn
			}
			starts, err := manifest.ReadSpeechStarts(speechStartsPath, column)
			if err != nil {
				return err
			}

			mode := finalEvent
			if mode == "" {
				mode = cfg.Latency.FinalEvent
			}
			computer := latency.New(
				latency.WithFinalEvent(mode),
				latency.WithBreakdown(breakdown),
				latency.WithLogger(logger),
			)
			report, problems := computer.Compute(streams, starts)

			if outPath != "" {
				if err := writeJSONFile(outPath, report); err != nil {
					return err
				}
			}
			if useJSON(jsonFlag) {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printLatencyReport(cmd, report)
			}

			store, err := splitstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			run, err := splitstore.NewRun(splitName, splitstore.RunKindLatency, mode, report)
			if err != nil {
				return err
			}
			run.ID = runID
			run.NUtterances = report.NUtterances
			run.NExcluded = report.NExcluded
			if err := store.RecordRun(cmd.Context(), run); err != nil {
				return err
			}

			return reportProblems(logger, problems, report.NExcluded)
		},
	}

	cmd.Flags().StringVarP(&splitName, "split", "s", "", "Split name for run history")
	cmd.Flags().StringVar(&partialsPath, "partials", "", "Partial-results JSON path")
	cmd.Flags().StringVar(&speechStartsPath, "speech-starts", "", "Speech-start CSV path")
	cmd.Flags().StringVar(&speechStartColumn, "column", "", "Speech-start timestamp column (default from config)")
	cmd.Flags().StringVar(&finalEvent, "final-event", "", "TTLT endpoint: last_partial or explicit_final (default from config)")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Include per-utterance results")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON output")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the latency report JSON to a file")
	_ = cmd.MarkFlagRequired("partials")
	_ = cmd.MarkFlagRequired("speech-starts")
	return cmd
}

func printLatencyReport(cmd *cobra.Command, report *latency.Report) {
	out := cmd.OutOrStdout()
	summary := newReportTable(col("METRIC"), numCol("MEAN"), numCol("MEDIAN"), numCol("P90"))
	summary.addRow("TTFT", fmtSeconds(report.TTFTMean), fmtSeconds(report.TTFTMedian), fmtSeconds(report.TTFTP90))
	summary.addRow("TTLT", fmtSeconds(report.TTLTMean), fmtSeconds(report.TTLTMedian), fmtSeconds(report.TTLTP90))
	fmt.Fprintln(out, summary.render())
	fmt.Fprintf(out, "Utterances: %d measured, %d excluded, %d anomalous\n",
		report.NUtterances, report.NExcluded, report.NAnomalous)

	if len(report.Utterances) == 0 {
		return
	}
	utterances := newReportTable(col("ID"), numCol("TTFT"), numCol("TTLT"))
	for _, result := range report.Utterances {
		utterances.addRow(result.ID, fmtSeconds(result.TTFT), fmtSeconds(result.TTLT))
	}
	fmt.Fprintln(out, utterances.render())
}
