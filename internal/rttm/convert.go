package rttm

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"speechalign/internal/transcript"
)

var errNegative = errors.New("negative duration")

// ToTranscript maps every record to one replica. RTTM has no token
// granularity, so no tokens are produced; words appended to the name column
// become the replica text.
func ToTranscript(records []Record) (transcript.Transcript, error) {
	out := make(transcript.Transcript, 0, len(records))
	for i, r := range records {
		start, dur, err := bounds(i, r)
		if err != nil {
			return nil, err
		}
		idx, words := SplitName(r[ColName])
		spk := &transcript.Speaker{Idx: idx}
		if r[ColConf] != NA {
			conf, err := parseFloat(i, "conf", r[ColConf])
			if err != nil {
				return nil, err
			}
			spk.Conf = &conf
		}
		out = append(out, transcript.Replica{
			Speaker: spk,
			Speech: transcript.Speech{
				TimeStart: start,
				TimeEnd:   start + dur,
				Duration:  dur,
				Text:      strings.Join(words, " "),
			},
		})
	}
	return out, nil
}

// FromTranscript maps every replica to one SPEAKER record. Speech text is
// appended to the speaker id as slash-separated words; missing optional
// fields become NA so the column count is preserved. A speaker id holding
// whitespace fails with a *transcript.FormatError naming the replica.
func FromTranscript(t transcript.Transcript) ([]Record, error) {
	out := make([]Record, 0, len(t))
	for i, r := range t {
		name, conf := NA, NA
		if r.Speaker != nil {
			if strings.IndexFunc(r.Speaker.Idx, unicode.IsSpace) >= 0 {
				return nil, &transcript.FormatError{Index: i, Reason: fmt.Sprintf("speaker idx %q contains whitespace", r.Speaker.Idx)}
			}
			name = r.Speaker.Idx + slashWords(r.Speech.Text)
			if r.Speaker.Conf != nil {
				conf = formatFloat(*r.Speaker.Conf)
			}
		}
		out = append(out, NewSpeaker(formatFloat(r.Speech.TimeStart), formatFloat(r.Speech.Duration), name, conf))
	}
	return out, nil
}

func slashWords(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	return "/" + strings.Join(words, "/")
}

// SplitName separates a combined name column into the speaker id and the
// words appended to it.
func SplitName(name string) (speaker string, words []string) {
	parts := strings.Split(name, "/")
	speaker = parts[0]
	for _, w := range parts[1:] {
		if w != "" {
			words = append(words, w)
		}
	}
	return speaker, words
}
