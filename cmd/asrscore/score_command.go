package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"asrscore/internal/config"
	"asrscore/internal/logging"
	"asrscore/internal/manifest"
	"asrscore/internal/refs"
	"asrscore/internal/score"
	"asrscore/internal/services"
	"asrscore/internal/services/sclite"
	"asrscore/internal/splitstore"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var splitName string
	var hypPath string
	var hypColumn string
	var manifestPath string
	var engineName string
	var breakdown bool
	var jsonFlag bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a hypothesis submission against cached references",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runID := uuid.NewString()
			runCtx := services.WithRunID(cmd.Context(), runID)
			cmd.SetContext(runCtx)
			logger := logging.WithContext(runCtx, ctx.ensureLogger())

			store, err := splitstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			set, err := loadOrBuildReferences(cmd, cfg, store, splitName, manifestPath)
			if err != nil {
				return err
			}

			column := hypColumn
			if column == "" {
				column = cfg.Scorer.HypColumn
			}
			hypotheses, err := manifest.ReadHypotheses(hypPath, column)
			if err != nil {
				return err
			}

			engine := engineName
			if engine == "" {
				engine = cfg.Scorer.Engine
			}
			backend, err := newEngine(cfg, engine)
			if err != nil {
				return err
			}
			normalizer, err := newNormalizer(cfg)
			if err != nil {
				return err
			}

			scorer := score.New(normalizer, backend,
				score.WithWorkers(cfg.Scorer.Workers),
				score.WithClipErrors(cfg.Scorer.ClipErrors),
				score.WithBreakdown(breakdown),
				score.WithLogger(logger),
			)
			report, problems := scorer.Score(cmd.Context(), hypotheses, set)
			if report == nil {
				return errors.Join(problems...)
			}

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
				printScoreReport(cmd, splitName, engine, report)
			}

			run, err := splitstore.NewRun(splitName, splitstore.RunKindScore, engine, report)
			if err != nil {
				return err
			}
			run.ID = runID
			run.WER = report.WER
			run.CER = report.CER
			run.NUtterances = report.NUtterances
			run.NExcluded = report.NExcluded
			if err := store.RecordRun(cmd.Context(), run); err != nil {
				return err
			}

			return reportProblems(logger, problems, report.NExcluded)
		},
	}

	cmd.Flags().StringVarP(&splitName, "split", "s", "", "Split name")
	cmd.Flags().StringVar(&hypPath, "hyp", "", "Hypothesis CSV path")
	cmd.Flags().StringVar(&hypColumn, "hyp-col", "", "Hypothesis text column (default from config)")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Manifest CSV, used to build references when the split is not cached")
	cmd.Flags().StringVar(&engineName, "engine", "", "Alignment backend: builtin or sclite (default from config)")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Include per-utterance results")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON output")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the metrics report JSON to a file")
	_ = cmd.MarkFlagRequired("split")
	_ = cmd.MarkFlagRequired("hyp")
	return cmd
}

// loadOrBuildReferences fetches the cached reference set, falling back to a
// fresh build when a manifest is supplied.
func loadOrBuildReferences(cmd *cobra.Command, cfg *config.Config, store *splitstore.Store, splitName, manifestPath string) (*refs.Set, error) {
	set, err := store.LoadReferences(cmd.Context(), splitName)
	if err == nil {
		return set, nil
	}
	if !splitstore.IsNotFound(err) || manifestPath == "" {
		return nil, err
	}

	utterances, err := manifest.ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	set, buildErr := refs.Build(utterances)
	if buildErr != nil {
		return nil, buildErr
	}
	checksum, err := fileChecksum(manifestPath)
	if err != nil {
		return nil, err
	}
	rawByID := make(map[string]string, len(utterances))
	for _, utt := range utterances {
		rawByID[utt.ID] = utt.Text
	}
	if err := store.SaveSplit(cmd.Context(), splitName, checksum, set, rawByID); err != nil {
		return nil, err
	}
	return set, nil
}

func newEngine(cfg *config.Config, name string) (score.Engine, error) {
	switch name {
	case config.EngineBuiltin:
		return &score.BuiltinEngine{Workers: cfg.Scorer.Workers}, nil
	case config.EngineSclite:
		cli := sclite.NewCLI(
			sclite.WithBinary(cfg.Scorer.ScliteBinary),
			sclite.WithTimeout(time.Duration(cfg.Scorer.ScliteTimeout)*time.Second),
		)
		return sclite.NewEngine(cli, sclite.WithUnknownToken(cfg.Normalizer.UnknownToken)), nil
	default:
		return nil, fmt.Errorf("unknown alignment engine %q", name)
	}
}

func printScoreReport(cmd *cobra.Command, splitName, engine string, report *score.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Split %s (%s engine)\n", splitName, engine)
	fmt.Fprintf(out, "  WER: %.4f\n  CER: %.4f\n", report.WER, report.CER)
	fmt.Fprintf(out, "  Utterances: %d scored, %d excluded\n", report.NUtterances, report.NExcluded)

	if len(report.Utterances) == 0 {
		return
	}
	tbl := newReportTable(col("ID"), col("VARIANT"), numCol("SUB"), numCol("INS"),
		numCol("DEL"), numCol("REF LEN"), numCol("CHAR ERR"))
	for _, sel := range report.Utterances {
		tbl.addRow(sel.ID, sel.Variant,
			fmtCount(sel.Word.Substitutions),
			fmtCount(sel.Word.Insertions),
			fmtCount(sel.Word.Deletions),
			fmtCount(sel.Word.ReferenceLength()),
			fmtCount(sel.Char.Errors()))
	}
	fmt.Fprintln(out, tbl.render())
}
