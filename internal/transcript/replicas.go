package transcript

import (
	"strings"

	"github.com/google/uuid"
)

// SpeakerName resolves the display form of a speaker id: the mapped name
// when present, else the id with underscores rendered as spaces.
func SpeakerName(idx string, names map[string]string) string {
	if name, ok := names[idx]; ok {
		return name
	}
	return strings.ReplaceAll(idx, "_", " ")
}

// AddSpeakerNames sets display_name on every replica that has a speaker.
func AddSpeakerNames(t Transcript, names map[string]string) Transcript {
	out := t.Clone()
	for i := range out {
		if out[i].Speaker == nil {
			continue
		}
		out[i].Speaker.DisplayName = SpeakerName(out[i].Speaker.Idx, names)
	}
	return out
}

// AddIDs assigns a fresh unique id to every replica.
func AddIDs(t Transcript) Transcript {
	out := t.Clone()
	for i := range out {
		out[i].ID = uuid.New().String()
	}
	return out
}

// WithPathFile tags every replica with the path of its source file.
func WithPathFile(t Transcript, path string) Transcript {
	out := t.Clone()
	for i := range out {
		out[i].PathFile = path
	}
	return out
}

// WithIdxFile tags every replica with the index of its source file.
func WithIdxFile(t Transcript, idx string) Transcript {
	out := t.Clone()
	for i := range out {
		out[i].IdxFile = idx
	}
	return out
}

// WithModels sets the models block on every replica.
func WithModels(t Transcript, m Models) Transcript {
	out := t.Clone()
	for i := range out {
		mm := m
		out[i].Models = &mm
	}
	return out
}

// VAD reduces t to bare speech intervals.
func VAD(t Transcript) Transcript {
	out := make(Transcript, 0, len(t))
	for _, r := range t {
		out = append(out, Replica{Speech: Speech{
			TimeStart: r.Speech.TimeStart,
			TimeEnd:   r.Speech.TimeEnd,
			Duration:  r.Speech.Duration,
		}})
	}
	return out
}

// StripTokens drops token lists, keeping the aggregated text.
func StripTokens(t Transcript) Transcript {
	out := t.Clone()
	for i := range out {
		out[i].Speech.Tokens = nil
	}
	return out
}
