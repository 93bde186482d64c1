package cmd

import (
	"fmt"
	"time"

	"speechalign/internal/config"
	"speechalign/internal/punct"
	"speechalign/internal/rttm"
	"speechalign/internal/transcript"
	"speechalign/internal/worker"
)

// loadTranscript reads a JSR file, or an RTTM file converted to replicas.
func loadTranscript(path string) (transcript.Transcript, error) {
	format, err := worker.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == worker.FormatJSR {
		return transcript.Load(path)
	}
	records, err := rttm.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return rttm.ToTranscript(records)
}

// newPredictor builds the punctuation restorer for mode; nil means none.
func newPredictor(mode string, p config.PunctConfig) (punct.Predictor, error) {
	switch mode {
	case config.PunctNone, "":
		return nil, nil
	case config.PunctRules:
		return punct.NewRules(p.Questions()), nil
	case config.PunctHTTP:
		if p.Endpoint == "" {
			return nil, fmt.Errorf("punct mode http requires an endpoint")
		}
		return punct.NewClient(p.Endpoint, p.GetTimeoutDuration(), p.MaxRetries, p.RatePerMin), nil
	}
	return nil, fmt.Errorf("unknown punct mode %q", mode)
}

// speakerNames merges a names file over the configured map.
func speakerNames(path string) (map[string]string, error) {
	names := make(map[string]string, len(cfg.Subtitle.Names))
	for k, v := range cfg.Subtitle.Names {
		names[k] = v
	}
	if path == "" {
		return names, nil
	}
	extra, err := config.LoadNames(path)
	if err != nil {
		return nil, err
	}
	for k, v := range extra {
		names[k] = v
	}
	return names, nil
}

// timed records the duration and outcome of fn under kind.
func timed(kind string, fn func() error) error {
	start := time.Now()
	err := fn()
	mtr.RecordConversion(kind, time.Since(start), err)
	return err
}
