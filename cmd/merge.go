package cmd

import (
	"fmt"
	"log/slog"

	"speechalign/internal/align"
	"speechalign/internal/rttm"
	"speechalign/internal/transcript"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Attach recognized words to diarization segments",
	Long: `Merge assigns every recognized word to the diarization segment whose
interval strictly contains the word's midpoint. Segments left without text
are dropped. Both inputs must be sorted by start time.`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

var combineVoskCmd = &cobra.Command{
	Use:   "combine-vosk",
	Short: "Append Vosk words to the name column of RTTM records",
	Args:  cobra.NoArgs,
	RunE:  runCombineVosk,
}

var (
	mergeSDR       string
	mergeASR       string
	mergeASRFormat string
	mergeOutput    string
	mergeStrict    bool
	mergeIDs       bool

	voskRTTM   string
	voskInput  string
	voskOutput string
	voskStrict bool
)

func init() {
	mergeCmd.Flags().StringVar(&mergeSDR, "sdr", "", "diarization segments (.json or .rttm)")
	mergeCmd.Flags().StringVar(&mergeASR, "asr", "", "recognized words (.json)")
	mergeCmd.Flags().StringVar(&mergeASRFormat, "asr-format", "jsr", "recognized words format: jsr or vosk")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output JSR path")
	mergeCmd.Flags().BoolVar(&mergeStrict, "strict", false, "reject unsorted or overlapping input")
	mergeCmd.Flags().BoolVar(&mergeIDs, "ids", false, "assign a unique id to every replica")
	for _, f := range []string{"sdr", "asr", "output"} {
		mergeCmd.MarkFlagRequired(f)
	}

	combineVoskCmd.Flags().StringVar(&voskRTTM, "rttm", "", "diarization RTTM")
	combineVoskCmd.Flags().StringVar(&voskInput, "vosk", "", "JSON list of Vosk results")
	combineVoskCmd.Flags().StringVarP(&voskOutput, "output", "o", "", "output RTTM path")
	combineVoskCmd.Flags().BoolVar(&voskStrict, "strict", false, "reject unsorted or overlapping input")
	for _, f := range []string{"rttm", "vosk", "output"} {
		combineVoskCmd.MarkFlagRequired(f)
	}

	rootCmd.AddCommand(mergeCmd, combineVoskCmd)
}

func loadSource(path, format string) (align.Source, error) {
	switch format {
	case "jsr":
		t, err := transcript.Load(path)
		if err != nil {
			return nil, err
		}
		return align.ReplicaSource(t), nil
	case "vosk":
		return align.LoadVosk(path)
	}
	return nil, fmt.Errorf("unknown asr format %q", format)
}

func runMerge(cmd *cobra.Command, args []string) error {
	sdr, err := loadTranscript(mergeSDR)
	if err != nil {
		return fmt.Errorf("load sdr: %w", err)
	}
	asr, err := loadSource(mergeASR, mergeASRFormat)
	if err != nil {
		return fmt.Errorf("load asr: %w", err)
	}

	m := &align.Merger{Strict: mergeStrict || cfg.Align.Strict}
	return timed("merge", func() error {
		out, st, err := m.Merge(sdr, asr)
		if err != nil {
			return err
		}
		mtr.RecordMerge(st.Words, st.Assigned, st.Dropped, st.Pruned, st.Empty)
		if mergeIDs {
			out = transcript.AddIDs(out)
		}
		if err := transcript.Save(mergeOutput, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("merge complete",
			"replicas", len(out),
			"words", st.Words,
			"assigned", st.Assigned,
			"dropped", st.Dropped,
			"empty_segments", st.Empty,
			"output", mergeOutput)
		return nil
	})
}

func runCombineVosk(cmd *cobra.Command, args []string) error {
	records, err := rttm.ReadFile(voskRTTM)
	if err != nil {
		return fmt.Errorf("load rttm: %w", err)
	}
	vosk, err := align.LoadVosk(voskInput)
	if err != nil {
		return fmt.Errorf("load vosk: %w", err)
	}

	m := &align.Merger{Strict: voskStrict || cfg.Align.Strict}
	return timed("combine_vosk", func() error {
		out, st, err := m.CombineVosk(records, vosk)
		if err != nil {
			return err
		}
		mtr.RecordMerge(st.Words, st.Assigned, st.Dropped, st.Pruned, st.Empty)
		if err := rttm.WriteFile(voskOutput, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		slog.Info("combine complete",
			"records", len(out),
			"words", st.Words,
			"assigned", st.Assigned,
			"output", voskOutput)
		return nil
	})
}
