// Package align assigns recognized words to diarization segments by their
// temporal midpoint.
package align

import (
	"strings"

	"speechalign/internal/rttm"
	"speechalign/internal/transcript"
)

// Stats summarizes one sweep.
type Stats struct {
	Words    int // words offered
	Assigned int // words placed into a segment
	Dropped  int // words that fell outside every segment
	Pruned   int // segments retired before the sweep ended
	Empty    int // segments dropped for having no text
}

// span is a segment bound reduced for the sweep.
type span struct {
	start, end float64
}

// sweep walks words against segments in one ordered pass. Both sequences
// must be ascending by start and segments must not overlap; under that
// precondition every segment is retired at most once, so the pass is
// linear in len(spans)+len(words).
//
// Live segments are kept in a singly linked list over their indices, so a
// retired segment is unlinked without disturbing the cursor.
func sweep(spans []span, words []Word, assign func(seg int, w Word)) Stats {
	st := Stats{Words: len(words)}

	end := len(spans)
	next := make([]int, end)
	for i := range next {
		next[i] = i + 1
	}
	head := 0

	for _, w := range words {
		mid := w.Mid()
		matched := false

		prev := -1
		for cur := head; cur != end; {
			s := spans[cur]
			if mid > s.start && mid < s.end {
				assign(cur, w)
				matched = true
				break
			}
			if w.End < s.start {
				break
			}
			if w.Start > s.end {
				// No later word can reach this segment.
				if prev == -1 {
					head = next[cur]
				} else {
					next[prev] = next[cur]
				}
				st.Pruned++
				cur = next[cur]
				continue
			}
			prev = cur
			cur = next[cur]
		}

		if matched {
			st.Assigned++
		} else {
			st.Dropped++
		}
	}
	return st
}

// Merger merges diarization output with recognized words.
type Merger struct {
	// Strict rejects input that is not ascending instead of producing
	// undefined assignments.
	Strict bool
}

// Merge returns a copy of sdr in which every replica carries the tokens
// whose midpoint lies strictly inside its interval, and a text made of
// their words joined by spaces. Replicas left without text are dropped.
func (m *Merger) Merge(sdr transcript.Transcript, asr Source) (transcript.Transcript, Stats, error) {
	words := asr.Words()
	spans := make([]span, len(sdr))
	for i, r := range sdr {
		spans[i] = span{start: r.Speech.TimeStart, end: r.Speech.TimeEnd}
	}
	if m.Strict {
		if err := checkOrder(spans, words); err != nil {
			return nil, Stats{}, err
		}
	}

	out := sdr.Clone()
	st := sweep(spans, words, func(seg int, w Word) {
		sp := &out[seg].Speech
		sp.Tokens = append(sp.Tokens, transcript.Token{Start: w.Start, End: w.End, Word: w.Text, Conf: w.Conf})
		if sp.Text == "" {
			sp.Text = w.Text
		} else {
			sp.Text += " " + w.Text
		}
	})

	kept := out[:0]
	for _, r := range out {
		if strings.TrimSpace(r.Speech.Text) == "" {
			st.Empty++
			continue
		}
		kept = append(kept, r)
	}
	return kept, st, nil
}

// CombineVosk appends every matched word to the name column of its record
// as "/word". Records are returned in full, matched or not.
func (m *Merger) CombineVosk(records []rttm.Record, vosk Source) ([]rttm.Record, Stats, error) {
	intervals, err := rttm.Intervals(records)
	if err != nil {
		return nil, Stats{}, err
	}
	words := vosk.Words()
	spans := make([]span, len(intervals))
	for i, iv := range intervals {
		spans[i] = span{start: iv.Start, end: iv.End}
	}
	if m.Strict {
		if err := checkOrder(spans, words); err != nil {
			return nil, Stats{}, err
		}
	}

	out := make([]rttm.Record, len(records))
	copy(out, records)
	st := sweep(spans, words, func(seg int, w Word) {
		out[intervals[seg].Index][rttm.ColName] += "/" + w.Text
	})
	return out, st, nil
}
