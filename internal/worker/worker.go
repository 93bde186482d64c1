package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"speechalign/internal/metrics"
	"speechalign/internal/progress"
	"speechalign/internal/punct"
	"speechalign/internal/rttm"
	"speechalign/internal/srt"
	"speechalign/internal/transcript"
)

// Formats understood by the batch converter.
const (
	FormatRTTM = "rttm"
	FormatJSR  = "jsr"
	FormatSRT  = "srt"
)

var extensions = map[string]string{
	FormatRTTM: ".rttm",
	FormatJSR:  ".json",
	FormatSRT:  ".srt",
}

// DetectFormat infers the input format from a file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rttm":
		return FormatRTTM, nil
	case ".json":
		return FormatJSR, nil
	}
	return "", fmt.Errorf("cannot detect format of %s", filepath.Base(path))
}

// Options configures a batch conversion.
type Options struct {
	Inputs        []string
	To            string
	OutputDir     string // empty writes next to each input
	MaxConcurrent int
	Punctuator    punct.Predictor
	Names         map[string]string
	Metrics       *metrics.Metrics
	// ProgressInterval is the minimum delay between progress reports.
	ProgressInterval time.Duration
}

// Result pairs an input with the file written for it.
type Result struct {
	Input  string
	Output string
}

// Run converts every input to opts.To. The first failure cancels the
// remaining conversions; files already written are left in place.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if _, ok := extensions[opts.To]; !ok {
		return nil, fmt.Errorf("unknown target format %q", opts.To)
	}
	if len(opts.Inputs) == 0 {
		return nil, nil
	}

	tracker := progress.NewTracker(float64(len(opts.Inputs)), opts.ProgressInterval,
		func(frac float64, remaining time.Duration) {
			slog.Info("conversion progress",
				"percent", fmt.Sprintf("%.0f%%", frac*100),
				"remaining", remaining.Round(time.Second))
		})

	if opts.MaxConcurrent <= 1 || len(opts.Inputs) == 1 {
		return processSequential(ctx, opts, tracker)
	}
	return processConcurrent(ctx, opts, tracker)
}

// OutputPath returns where the converted form of input is written.
func OutputPath(input, to, dir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + extensions[to]
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

func convertFile(ctx context.Context, input string, opts Options) (string, error) {
	from, err := DetectFormat(input)
	if err != nil {
		return "", err
	}
	if from == opts.To {
		return "", fmt.Errorf("%s is already %s", filepath.Base(input), from)
	}
	kind := from + "2" + opts.To
	out := OutputPath(input, opts.To, opts.OutputDir)

	start := time.Now()
	err = convert(ctx, input, out, from, opts)
	if opts.Metrics != nil {
		opts.Metrics.RecordConversion(kind, time.Since(start), err)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", filepath.Base(input), err)
	}
	slog.Debug("converted", "kind", kind, "input", filepath.Base(input), "output", out)
	return out, nil
}

func convert(ctx context.Context, input, output, from string, opts Options) error {
	switch from {
	case FormatRTTM:
		records, err := rttm.ReadFile(input)
		if err != nil {
			return err
		}
		switch opts.To {
		case FormatJSR:
			t, err := rttm.ToTranscript(records)
			if err != nil {
				return err
			}
			return transcript.Save(output, t)
		case FormatSRT:
			text, err := srt.FromRecords(ctx, records, srt.Options{Punctuator: opts.Punctuator, Names: opts.Names})
			if err != nil {
				return err
			}
			return srt.WriteFile(output, text)
		}
	case FormatJSR:
		t, err := transcript.Load(input)
		if err != nil {
			return err
		}
		switch opts.To {
		case FormatRTTM:
			records, err := rttm.FromTranscript(t)
			if err != nil {
				return err
			}
			return rttm.WriteFile(output, records)
		case FormatSRT:
			return srt.WriteFile(output, srt.FromTranscript(t, opts.Names))
		}
	}
	return fmt.Errorf("unsupported conversion %s to %s", from, opts.To)
}

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
