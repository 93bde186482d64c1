package cmd

import (
	"fmt"
	"log/slog"

	"speechalign/internal/transcript"

	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names <input>",
	Short: "Set speaker display names on every replica",
	Long: `Names resolves each replica's speaker id through a names map. Ids
without a mapping are shown with underscores replaced by spaces.`,
	Args: cobra.ExactArgs(1),
	RunE: runNames,
}

var annotateCmd = &cobra.Command{
	Use:   "annotate <input>",
	Short: "Tag replicas with ids, provenance and model names",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotate,
}

var (
	namesFile   string
	namesOutput string

	annotateOutput   string
	annotateIDs      bool
	annotatePath     string
	annotateIdx      string
	annotateVAD      bool
	annotateNoTokens bool
	annotateModels   transcript.Models
)

func init() {
	namesCmd.Flags().StringVar(&namesFile, "names", "", "speaker names file (.yaml or .toml)")
	namesCmd.Flags().StringVarP(&namesOutput, "output", "o", "", "output JSR path")
	namesCmd.MarkFlagRequired("output")

	f := annotateCmd.Flags()
	f.StringVarP(&annotateOutput, "output", "o", "", "output JSR path")
	f.BoolVar(&annotateIDs, "ids", false, "assign a unique id to every replica")
	f.StringVar(&annotatePath, "path-file", "", "source file path tag")
	f.StringVar(&annotateIdx, "idx-file", "", "source file index tag")
	f.BoolVar(&annotateVAD, "vad", false, "keep only speech intervals")
	f.BoolVar(&annotateNoTokens, "strip-tokens", false, "drop token lists")
	f.StringVar(&annotateModels.SDR, "model-sdr", "", "speaker diarization model")
	f.StringVar(&annotateModels.SCD, "model-scd", "", "speaker change detection model")
	f.StringVar(&annotateModels.ASR, "model-asr", "", "speech recognition model")
	f.StringVar(&annotateModels.VAD, "model-vad", "", "voice activity detection model")
	f.StringVar(&annotateModels.Punct, "model-punct", "", "punctuation model")
	annotateCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(namesCmd, annotateCmd)
}

func runNames(cmd *cobra.Command, args []string) error {
	t, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	names, err := speakerNames(namesFile)
	if err != nil {
		return err
	}
	return timed("names", func() error {
		if err := transcript.Save(namesOutput, transcript.AddSpeakerNames(t, names)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("names applied", "replicas", len(t), "mapped", len(names), "output", namesOutput)
		return nil
	})
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	t, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	return timed("annotate", func() error {
		if annotateVAD {
			t = transcript.VAD(t)
		}
		if annotateNoTokens {
			t = transcript.StripTokens(t)
		}
		if annotateIDs {
			t = transcript.AddIDs(t)
		}
		if annotatePath != "" {
			t = transcript.WithPathFile(t, annotatePath)
		}
		if annotateIdx != "" {
			t = transcript.WithIdxFile(t, annotateIdx)
		}
		if annotateModels != (transcript.Models{}) {
			t = transcript.WithModels(t, annotateModels)
		}
		if err := transcript.Save(annotateOutput, t); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("annotated", "replicas", len(t), "output", annotateOutput)
		return nil
	})
}
