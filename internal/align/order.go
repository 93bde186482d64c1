package align

import "speechalign/internal/transcript"

// checkOrder verifies the sweep preconditions: segments ascending and
// non-overlapping, words ascending by start. Input is never reordered.
func checkOrder(spans []span, words []Word) error {
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].start {
			return &transcript.PreconditionError{Kind: "segment", Index: i, Prev: spans[i-1].start, Got: spans[i].start}
		}
		if spans[i].start < spans[i-1].end {
			return &transcript.PreconditionError{Kind: "segment", Index: i, Prev: spans[i-1].end, Got: spans[i].start}
		}
	}
	for i := 1; i < len(words); i++ {
		if words[i].Start < words[i-1].Start {
			return &transcript.PreconditionError{Kind: "token", Index: i, Prev: words[i-1].Start, Got: words[i].Start}
		}
	}
	return nil
}
