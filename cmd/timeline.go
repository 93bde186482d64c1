package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"speechalign/internal/ffmpeg"
	"speechalign/internal/transcript"

	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift <input>",
	Short: "Move every replica and token of a transcript in time",
	Args:  cobra.ExactArgs(1),
	RunE:  runShift,
}

var composeCmd = &cobra.Command{
	Use:   "compose <input>...",
	Short: "Concatenate transcripts of consecutive audio parts onto one timeline",
	Long: `Compose shifts each transcript by the total length of the parts before
it. The length of a part is the duration of its audio file when --audio is
given, otherwise the last end time of its transcript.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompose,
}

var (
	shiftBy     float64
	shiftAfter  string
	shiftOutput string

	composeAudio  []string
	composeOutput string
)

func init() {
	shiftCmd.Flags().Float64Var(&shiftBy, "by", 0, "offset in seconds, may be negative")
	shiftCmd.Flags().StringVarP(&shiftOutput, "output", "o", "", "output JSR path")
	shiftCmd.Flags().StringVar(&shiftAfter, "after", "", "place the input after the last end time of this transcript")
	shiftCmd.MarkFlagsOneRequired("by", "after")
	shiftCmd.MarkFlagsMutuallyExclusive("by", "after")
	shiftCmd.MarkFlagRequired("output")

	composeCmd.Flags().StringSliceVar(&composeAudio, "audio", nil, "audio file of each part, in input order")
	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", "", "output JSR path")
	composeCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(shiftCmd, composeCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	t, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	var prev transcript.Transcript
	if shiftAfter != "" {
		if prev, err = loadTranscript(shiftAfter); err != nil {
			return err
		}
	}
	return timed("shift", func() error {
		out, offset := transcript.Shift(t, shiftBy), shiftBy
		if prev != nil {
			offset = transcript.LastEnd(prev)
			out = transcript.ShiftAfter(t, offset)
		}
		if err := transcript.Save(shiftOutput, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("shift complete", "replicas", len(t), "offset", offset, "output", shiftOutput)
		return nil
	})
}

func runCompose(cmd *cobra.Command, args []string) error {
	if len(composeAudio) > 0 && len(composeAudio) != len(args) {
		return fmt.Errorf("got %d audio files for %d transcripts", len(composeAudio), len(args))
	}

	ctx, stop := signalContext()
	defer stop()

	parts := make([]transcript.Part, len(args))
	for i, path := range args {
		t, err := loadTranscript(path)
		if err != nil {
			return err
		}
		parts[i].Transcript = t

		if len(composeAudio) == 0 {
			continue
		}
		info, err := ffmpeg.ProbeMedia(ctx, composeAudio[i])
		if err != nil {
			return fmt.Errorf("probe %s: %w", filepath.Base(composeAudio[i]), err)
		}
		parts[i].Duration = info.Duration
		slog.Debug("part duration", "audio", filepath.Base(composeAudio[i]), "seconds", info.Duration, "codec", info.Codec)
	}

	return timed("compose", func() error {
		out := transcript.Compose(parts)
		if err := transcript.Save(composeOutput, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("compose complete", "parts", len(parts), "replicas", len(out), "output", composeOutput)
		return nil
	})
}
