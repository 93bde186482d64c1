package cmd

import (
	"fmt"
	"log/slog"

	"speechalign/internal/worker"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>...",
	Short: "Convert RTTM and JSR files to another format",
	Long: `Convert each input (.rttm or .json) to the target format. Outputs are
written next to their inputs unless an output directory is given. Several
inputs are converted in parallel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var (
	convertTo        string
	convertOutputDir string
	convertJobs      int
	convertPunct     string
	convertNames     string
)

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target format: rttm, jsr or srt")
	convertCmd.Flags().StringVarP(&convertOutputDir, "output-dir", "o", "", "output directory (default: next to input)")
	convertCmd.Flags().IntVarP(&convertJobs, "jobs", "j", 0, "max concurrent conversions (default: from config)")
	convertCmd.Flags().StringVar(&convertPunct, "punct", "", "punctuation for RTTM to SRT: none, rules or http (default: from config)")
	convertCmd.Flags().StringVar(&convertNames, "names", "", "speaker names file (.yaml or .toml)")
	convertCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	jobs := convertJobs
	if jobs <= 0 {
		jobs = cfg.Worker.MaxConcurrent
	}
	mode := convertPunct
	if mode == "" {
		mode = cfg.Punct.Mode
	}
	predictor, err := newPredictor(mode, cfg.Punct)
	if err != nil {
		return err
	}
	names, err := speakerNames(convertNames)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	results, err := worker.Run(ctx, worker.Options{
		Inputs:           args,
		To:               convertTo,
		OutputDir:        convertOutputDir,
		MaxConcurrent:    jobs,
		Punctuator:       predictor,
		Names:            names,
		Metrics:          mtr,
		ProgressInterval: cfg.Worker.GetProgressInterval(),
	})
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	slog.Info("conversion complete", "files", len(results))
	return nil
}
