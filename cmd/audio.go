package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"speechalign/internal/ffmpeg"

	"github.com/spf13/cobra"
)

var extractAudioCmd = &cobra.Command{
	Use:   "extract-audio <input>",
	Short: "Decode media into mono 16-bit PCM for recognition",
	Long: `Extract-audio runs ffmpeg to decode any media file into a mono 16-bit
PCM WAV stream, optionally limited to a time range. With --raw the WAV
header is dropped and the range is cut from the decoded buffer instead of
by seeking.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtractAudio,
}

var (
	audioStart  float64
	audioEnd    float64
	audioOutput string
	audioStdin  bool
	audioRaw    bool
)

func init() {
	extractAudioCmd.Flags().Float64Var(&audioStart, "start", 0, "start of the range in seconds")
	extractAudioCmd.Flags().Float64Var(&audioEnd, "end", 0, "end of the range in seconds")
	extractAudioCmd.Flags().StringVarP(&audioOutput, "output", "o", "", "output path")
	extractAudioCmd.Flags().BoolVar(&audioStdin, "stdin", false, "feed the input to ffmpeg through stdin")
	extractAudioCmd.Flags().BoolVar(&audioRaw, "raw", false, "write headerless PCM cut in memory")
	extractAudioCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(extractAudioCmd)
}

func runExtractAudio(cmd *cobra.Command, args []string) error {
	if !ffmpeg.Available() {
		return fmt.Errorf("ffmpeg not found in PATH")
	}

	in := ffmpeg.Input{Path: args[0], Rate: cfg.Audio.SampleRate}
	if audioStdin {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		in = ffmpeg.Input{Data: data, Rate: cfg.Audio.SampleRate}
	}

	trim := ffmpeg.Trim{Start: audioStart, End: audioEnd}
	if audioRaw {
		trim = ffmpeg.Trim{}
	}

	ctx, stop := signalContext()
	defer stop()

	return timed("extract_audio", func() error {
		data, err := ffmpeg.Extract(ctx, in, trim)
		if err != nil {
			return err
		}
		if audioRaw {
			data = ffmpeg.CutPCM(ffmpeg.StripHeader(data), audioStart, audioEnd, cfg.Audio.SampleRate)
		}
		if err := os.WriteFile(audioOutput, data, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("audio extracted",
			"seconds", ffmpeg.PCMDuration(data, cfg.Audio.SampleRate),
			"bytes", len(data),
			"output", audioOutput)
		return nil
	})
}
