// Package srt renders transcripts as speaker-prefixed subtitles with
// whole-second timing.
package srt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"speechalign/internal/punct"
	"speechalign/internal/rttm"
	"speechalign/internal/transcript"
)

// Entry is one subtitle block.
type Entry struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// Generate renders entries as numbered blocks, each followed by a blank line.
func Generate(entries []Entry) string {
	var sb strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n", i+1, FormatTime(e.Start), FormatTime(e.End))
		if e.Speaker != "" {
			sb.WriteString(e.Speaker)
			sb.WriteString(": ")
		}
		sb.WriteString(e.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// FromTranscript renders a JSR transcript. The speaker label is the display
// name when set, else the mapped or raw id with underscores as spaces.
func FromTranscript(t transcript.Transcript, names map[string]string) string {
	entries := make([]Entry, 0, len(t))
	for _, r := range t {
		e := Entry{Start: r.Speech.TimeStart, End: r.Speech.TimeEnd, Text: r.Speech.Text}
		if r.Speaker != nil {
			e.Speaker = r.Speaker.DisplayName
			if e.Speaker == "" {
				e.Speaker = transcript.SpeakerName(r.Speaker.Idx, names)
			}
		}
		entries = append(entries, e)
	}
	return Generate(entries)
}

// Options tunes FromRecords.
type Options struct {
	// Punctuator restores casing and punctuation; nil renders the name
	// column verbatim with slashes as spaces.
	Punctuator punct.Predictor
	// Names maps speaker ids to display names when Punctuator is set.
	Names map[string]string
}

// FromRecords renders RTTM records whose name column carries slash-joined
// words. Any record error fails the whole conversion.
func FromRecords(ctx context.Context, records []rttm.Record, opts Options) (string, error) {
	intervals, err := rttm.Intervals(records)
	if err != nil {
		return "", err
	}

	entries := make([]Entry, 0, len(intervals))
	for _, iv := range intervals {
		e := Entry{Start: iv.Start, End: iv.End}
		if opts.Punctuator == nil {
			e.Text = strings.ReplaceAll(iv.Name, "/", " ")
			entries = append(entries, e)
			continue
		}

		speaker, words := rttm.SplitName(iv.Name)
		text, err := punct.Restore(ctx, opts.Punctuator, words)
		if err != nil {
			return "", fmt.Errorf("record %d: %w", iv.Index, err)
		}
		e.Speaker = transcript.SpeakerName(speaker, opts.Names)
		e.Text = text
		entries = append(entries, e)
	}
	return Generate(entries), nil
}

// WriteFile writes subtitles to path as a whole-file write.
func WriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
