// Package ffmpeg wraps the ffmpeg and ffprobe binaries used to normalize
// source audio into mono 16 kHz 16-bit PCM.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"speechalign/internal/transcript"
)

// SampleRate is the default output rate of Extract, in Hz.
const SampleRate = 16000

// MediaInfo holds duration and codec information from ffprobe.
type MediaInfo struct {
	Duration float64
	Codec    string
}

// Input is a media source: a file path or an in-memory buffer.
type Input struct {
	Path string
	Data []byte
	Rate int // output sample rate; 0 means SampleRate
}

// Trim limits extraction to [Start, End) seconds. Zero values disable
// either bound.
type Trim struct {
	Start float64
	End   float64
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// HMS formats seconds as HH:MM:SS for ffmpeg seek arguments, rounding to
// the nearest second.
func HMS(seconds float64) string {
	total := int64(math.Round(math.Max(seconds, 0)))
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// buildArgs assembles the ffmpeg command line for an extraction.
func buildArgs(in Input, trim Trim) []string {
	var args []string
	if trim.Start > 0 {
		args = append(args, "-ss", HMS(trim.Start))
		if trim.End > trim.Start {
			args = append(args, "-t", HMS(trim.End-trim.Start))
		}
	}
	src := in.Path
	if in.Data != nil {
		src = "-"
	}
	sampleRate := in.Rate
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	args = append(args,
		"-i", src,
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		"-f", "wav",
		"pipe:1",
		"-hide_banner",
		"-loglevel", "error",
	)
	return args
}

// Extract decodes in into a WAV stream of mono 16-bit PCM. A
// non-zero exit is reported as *transcript.ExternalToolError.
func Extract(ctx context.Context, in Input, trim Trim) ([]byte, error) {
	if in.Path == "" && in.Data == nil {
		return nil, fmt.Errorf("extract: empty input")
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", buildArgs(in, trim)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if in.Data != nil {
		cmd.Stdin = bytes.NewReader(in.Data)
	}

	slog.Debug("running ffmpeg", "args", strings.Join(cmd.Args[1:], " "))
	if err := cmd.Run(); err != nil {
		return nil, &transcript.ExternalToolError{Tool: "ffmpeg", Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// ProbeMedia uses ffprobe to get media duration and audio codec.
func ProbeMedia(ctx context.Context, path string) (*MediaInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, &transcript.ExternalToolError{Tool: "ffprobe", Err: err}
	}
	return parseProbe(out)
}

func parseProbe(out []byte) (*MediaInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	dur, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return nil, &transcript.ParseError{Index: -1, Field: "duration", Value: probe.Format.Duration, Err: err}
	}

	codec := "N/A"
	if len(probe.Streams) > 0 && probe.Streams[0].CodecName != "" {
		codec = probe.Streams[0].CodecName
	}

	return &MediaInfo{Duration: dur, Codec: codec}, nil
}
