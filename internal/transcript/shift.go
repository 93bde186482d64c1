package transcript

// Shift returns a copy of t with offset seconds added to every replica bound
// and to every nested token bound.
func Shift(t Transcript, offset float64) Transcript {
	out := t.Clone()
	for i := range out {
		shiftReplica(&out[i], offset)
	}
	return out
}

// ShiftAfter places t right after a previously processed transcript that
// ended at lastEnd.
func ShiftAfter(t Transcript, lastEnd float64) Transcript {
	return Shift(t, lastEnd)
}

func shiftReplica(r *Replica, offset float64) {
	r.Speech.TimeStart += offset
	r.Speech.TimeEnd += offset
	applyTimeOffset(r.Speech.Tokens, offset)
}

// applyTimeOffset adds an offset (in seconds) to all token timestamps.
func applyTimeOffset(tokens []Token, offset float64) {
	for i := range tokens {
		tokens[i].Start += offset
		tokens[i].End += offset
	}
}

// LastEnd returns the largest time_end in t, or 0 for an empty transcript.
func LastEnd(t Transcript) float64 {
	last := 0.0
	for _, r := range t {
		if r.Speech.TimeEnd > last {
			last = r.Speech.TimeEnd
		}
	}
	return last
}

// Part is one independently timed transcript to be placed on a shared
// timeline. Duration is the length of the source audio; when zero the
// transcript's own last end time is used instead.
type Part struct {
	Transcript Transcript
	Duration   float64
}

// Compose concatenates parts onto one timeline, shifting each part by the
// accumulated length of the parts before it.
func Compose(parts []Part) Transcript {
	var (
		out    Transcript
		offset float64
	)
	for _, p := range parts {
		out = append(out, Shift(p.Transcript, offset)...)
		if p.Duration > 0 {
			offset += p.Duration
		} else {
			offset += LastEnd(p.Transcript)
		}
	}
	return out
}
