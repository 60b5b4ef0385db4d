package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"asrscore/internal/config"
	"asrscore/internal/logging"
	"asrscore/internal/manifest"
	"asrscore/internal/normalize"
	"asrscore/internal/refs"
	"asrscore/internal/services"
	"asrscore/internal/splitstore"
)

func newRefsCommand(ctx *commandContext) *cobra.Command {
	refsCmd := &cobra.Command{
		Use:   "refs",
		Short: "Reference set utilities",
	}
	refsCmd.AddCommand(newRefsBuildCommand(ctx))
	return refsCmd
}

func newRefsBuildCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string
	var splitName string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Normalize a manifest into cached reference transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			buildCtx := services.WithComponent(cmd.Context(), "refs")
			logger := logging.WithContext(buildCtx, ctx.ensureLogger())

			utterances, err := manifest.ReadManifest(manifestPath)
			if err != nil {
				return err
			}
			normalizer, err := newNormalizer(cfg)
			if err != nil {
				return err
			}

			release, err := splitstore.AcquireBuildLock(cfg.Paths.CacheDir)
			if err != nil {
				return err
			}
			defer release()

			set, problems := refs.BuildFromRaw(normalizer, utterances)

			dir := outputDir
			if dir == "" {
				dir = filepath.Join(cfg.Paths.WorkDir, "refs")
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create refs directory: %w", err)
			}
			ref1Path := filepath.Join(dir, fmt.Sprintf("ref1.%s.norm.trn", splitName))
			ref2Path := filepath.Join(dir, fmt.Sprintf("ref2.%s.norm.trn", splitName))
			if err := refs.WriteTRN(ref1Path, set.WithDisfluency); err != nil {
				return err
			}
			if err := refs.WriteTRN(ref2Path, set.WithoutDisfluency); err != nil {
				return err
			}

			checksum, err := fileChecksum(manifestPath)
			if err != nil {
				return err
			}
			rawByID := make(map[string]string, len(utterances))
			for _, utt := range utterances {
				rawByID[utt.ID] = utt.Text
			}
			store, err := splitstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SaveSplit(cmd.Context(), splitName, checksum, set, rawByID); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Built %d reference utterances for split %s\n", set.Len(), splitName)
			fmt.Fprintf(out, "  %s\n  %s\n", ref1Path, ref2Path)

			excluded := len(utterances) - set.Len()
			return reportProblems(logger, problems, excluded)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Manifest CSV path")
	cmd.Flags().StringVarP(&splitName, "split", "s", "", "Split name")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for trn output (default <work_dir>/refs)")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("split")
	return cmd
}

// newNormalizer builds the configured normalizer, loading the optional
// correction table.
func newNormalizer(cfg *config.Config) (*normalize.Normalizer, error) {
	var corrections map[string]string
	if cfg.Normalizer.CorrectionsPath != "" {
		path, err := config.ExpandPath(cfg.Normalizer.CorrectionsPath)
		if err != nil {
			return nil, err
		}
		corrections, err = manifest.ReadCorrections(path)
		if err != nil {
			return nil, err
		}
	}
	return normalize.FromConfig(cfg, corrections), nil
}

func fileChecksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
