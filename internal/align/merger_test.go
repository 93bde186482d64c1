package align

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"speechalign/internal/rttm"
	"speechalign/internal/transcript"
)

func seg(start, end float64, idx string) transcript.Replica {
	return transcript.Replica{
		Speaker: &transcript.Speaker{Idx: idx},
		Speech:  transcript.Speech{TimeStart: start, TimeEnd: end, Duration: end - start},
	}
}

func asr(words ...Word) ReplicaSource {
	tokens := make([]transcript.Token, len(words))
	for i, w := range words {
		tokens[i] = transcript.Token{Start: w.Start, End: w.End, Word: w.Text}
	}
	return ReplicaSource{{Speech: transcript.Speech{Tokens: tokens}}}
}

func TestMerge_GapTokenDropped(t *testing.T) {
	sdr := transcript.Transcript{seg(0, 5, "A"), seg(10, 15, "B")}
	src := asr(
		Word{Start: 2, End: 3, Text: "hello"},
		Word{Start: 7, End: 8, Text: "gap"},
		Word{Start: 12, End: 13, Text: "world"},
	)

	m := &Merger{}
	out, st, err := m.Merge(sdr, src)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Speaker.Idx != "A" || out[0].Speech.Text != "hello" {
		t.Errorf("out[0] = %q %q, want A hello", out[0].Speaker.Idx, out[0].Speech.Text)
	}
	if out[1].Speaker.Idx != "B" || out[1].Speech.Text != "world" {
		t.Errorf("out[1] = %q %q, want B world", out[1].Speaker.Idx, out[1].Speech.Text)
	}
	if st.Assigned != 2 || st.Dropped != 1 || st.Pruned != 1 {
		t.Errorf("stats = %+v, want assigned 2 dropped 1 pruned 1", st)
	}
}

func TestMerge_DropsEmptySegments(t *testing.T) {
	sdr := transcript.Transcript{seg(0, 1, "A"), seg(2, 3, "B"), seg(4, 5, "C")}
	src := asr(
		Word{Start: 2.1, End: 2.3, Text: "one"},
		Word{Start: 2.4, End: 2.6, Text: "two"},
		Word{Start: 2.7, End: 2.9, Text: "three"},
	)

	out, st, err := (&Merger{}).Merge(sdr, src)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(out) != 1 || out[0].Speaker.Idx != "B" {
		t.Fatalf("out = %+v, want only B", out)
	}
	if out[0].Speech.Text != "one two three" {
		t.Errorf("text = %q, want 'one two three'", out[0].Speech.Text)
	}
	if len(out[0].Speech.Tokens) != 3 {
		t.Errorf("tokens = %d, want 3", len(out[0].Speech.Tokens))
	}
	if st.Empty != 2 {
		t.Errorf("Empty = %d, want 2", st.Empty)
	}
}

func TestMerge_BoundaryMidpointExcluded(t *testing.T) {
	// Midpoint exactly on a bound belongs to neither side.
	sdr := transcript.Transcript{seg(0, 2, "A"), seg(2, 4, "B")}
	src := asr(Word{Start: 1.5, End: 2.5, Text: "edge"})

	out, st, err := (&Merger{}).Merge(sdr, src)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("out = %+v, want empty", out)
	}
	if st.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", st.Dropped)
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	sdr := transcript.Transcript{seg(0, 5, "A")}
	_, _, err := (&Merger{}).Merge(sdr, asr(Word{Start: 1, End: 2, Text: "x"}))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if sdr[0].Speech.Text != "" || sdr[0].Speech.Tokens != nil {
		t.Errorf("input mutated: %+v", sdr[0].Speech)
	}
}

func TestMerge_KeepsConfidence(t *testing.T) {
	conf := 0.8
	src := ReplicaSource{{Speech: transcript.Speech{Tokens: []transcript.Token{
		{Start: 1, End: 2, Word: "x", Conf: &conf},
	}}}}
	out, _, err := (&Merger{}).Merge(transcript.Transcript{seg(0, 5, "A")}, src)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if c := out[0].Speech.Tokens[0].Conf; c == nil || *c != 0.8 {
		t.Errorf("conf = %v, want 0.8", c)
	}
}

func TestMerge_StrictRejectsUnordered(t *testing.T) {
	tests := []struct {
		name string
		sdr  transcript.Transcript
		src  Source
		kind string
	}{
		{
			name: "segments descending",
			sdr:  transcript.Transcript{seg(10, 15, "B"), seg(0, 5, "A")},
			src:  asr(),
			kind: "segment",
		},
		{
			name: "segments overlapping",
			sdr:  transcript.Transcript{seg(0, 5, "A"), seg(4, 8, "B")},
			src:  asr(),
			kind: "segment",
		},
		{
			name: "tokens descending",
			sdr:  transcript.Transcript{seg(0, 5, "A")},
			src:  asr(Word{Start: 3, End: 4, Text: "b"}, Word{Start: 1, End: 2, Text: "a"}),
			kind: "token",
		},
	}
	for _, tt := range tests {
		_, _, err := (&Merger{Strict: true}).Merge(tt.sdr, tt.src)
		var pe *transcript.PreconditionError
		if !errors.As(err, &pe) {
			t.Errorf("%s: err = %v, want *PreconditionError", tt.name, err)
			continue
		}
		if pe.Kind != tt.kind || pe.Index != 1 {
			t.Errorf("%s: kind=%q index=%d", tt.name, pe.Kind, pe.Index)
		}
	}
}

func TestMerge_NonStrictAcceptsUnordered(t *testing.T) {
	sdr := transcript.Transcript{seg(0, 5, "A")}
	src := asr(Word{Start: 3, End: 4, Text: "b"}, Word{Start: 1, End: 2, Text: "a"})
	out, _, err := (&Merger{}).Merge(sdr, src)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out[0].Speech.Text != "b a" {
		t.Errorf("text = %q, want encounter order 'b a'", out[0].Speech.Text)
	}
}

// TestMerge_MatchesBruteForce checks, over random ordered inputs, that each
// word lands in the unique segment strictly containing its midpoint.
func TestMerge_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		var sdr transcript.Transcript
		cursor := 0.0
		nSeg := 1 + rng.Intn(8)
		for i := 0; i < nSeg; i++ {
			start := cursor + rng.Float64()*3
			end := start + 0.1 + rng.Float64()*4
			sdr = append(sdr, seg(start, end, string(rune('A'+i))))
			cursor = end
		}

		var words []Word
		at := 0.0
		nWords := rng.Intn(30)
		for i := 0; i < nWords; i++ {
			start := at + rng.Float64()*1.5
			end := start + rng.Float64()*1.2
			words = append(words, Word{Start: start, End: end, Text: string(rune('a' + i%26))})
			at = start
		}

		want := make(map[string][]string)
		for _, w := range words {
			for _, r := range sdr {
				if w.Mid() > r.Speech.TimeStart && w.Mid() < r.Speech.TimeEnd {
					want[r.Speaker.Idx] = append(want[r.Speaker.Idx], w.Text)
					break
				}
			}
		}

		out, st, err := (&Merger{Strict: true}).Merge(sdr, asr(words...))
		if err != nil {
			t.Fatalf("iter %d: Merge: %v", iter, err)
		}
		if len(out) != len(want) {
			t.Fatalf("iter %d: %d replicas, want %d", iter, len(out), len(want))
		}
		assigned := 0
		for _, r := range out {
			exp := strings.Join(want[r.Speaker.Idx], " ")
			if r.Speech.Text != exp {
				t.Errorf("iter %d speaker %s: text %q, want %q", iter, r.Speaker.Idx, r.Speech.Text, exp)
			}
			assigned += len(r.Speech.Tokens)
		}
		if assigned != st.Assigned || st.Assigned+st.Dropped != len(words) {
			t.Errorf("iter %d: stats %+v inconsistent with %d assigned of %d", iter, st, assigned, len(words))
		}
	}
}

func TestCombineVosk(t *testing.T) {
	records := []rttm.Record{
		rttm.NewSpeaker("0", "5", "spk1", rttm.NA),
		rttm.NewSpeaker("6", "2", "spk2", rttm.NA),
		rttm.NewSpeaker("10", "5", "spk1", rttm.NA),
	}
	vosk := VoskResults{
		{Result: []VoskWord{{Word: "hello", Start: 1, End: 2}, {Word: "there", Start: 2, End: 3}}},
		{Text: ""},
		{Result: []VoskWord{{Word: "gap", Start: 8.5, End: 9.5}, {Word: "world", Start: 11, End: 12}}},
	}

	out, st, err := (&Merger{}).CombineVosk(records, vosk)
	if err != nil {
		t.Fatalf("CombineVosk: %v", err)
	}
	want := []string{"spk1/hello/there", "spk2", "spk1/world"}
	for i, w := range want {
		if out[i][rttm.ColName] != w {
			t.Errorf("record %d name = %q, want %q", i, out[i][rttm.ColName], w)
		}
	}
	if records[0][rttm.ColName] != "spk1" {
		t.Error("input records mutated")
	}
	if st.Dropped != 1 || st.Assigned != 3 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCombineVosk_ParseError(t *testing.T) {
	records := []rttm.Record{rttm.NewSpeaker("zero", "5", "spk1", rttm.NA)}
	_, _, err := (&Merger{}).CombineVosk(records, VoskResults{})
	var pe *transcript.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("err = %v, want *ParseError", err)
	}
}

func TestSweep_PrunesEachSegmentOnce(t *testing.T) {
	spans := []span{{0, 1}, {2, 3}, {4, 5}, {6, 7}}
	words := []Word{{Start: 8, End: 9, Text: "late"}, {Start: 9, End: 10, Text: "later"}}
	st := sweep(spans, words, func(int, Word) { t.Error("unexpected assignment") })
	if st.Pruned != 4 {
		t.Errorf("Pruned = %d, want 4", st.Pruned)
	}
	if st.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", st.Dropped)
	}
}

func TestSweep_SkipsWithoutPruning(t *testing.T) {
	// The long word overlaps A without its midpoint inside; A must stay
	// live for the short word that follows.
	spans := []span{{0, 4}, {5, 6}}
	words := []Word{{Start: 3, End: 8, Text: "long"}, {Start: 3.5, End: 3.7, Text: "short"}}
	var got []int
	sweep(spans, words, func(seg int, w Word) { got = append(got, seg) })
	if len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Errorf("assignments = %v, want [1 0]", got)
	}
}
