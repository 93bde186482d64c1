package ffmpeg

import "bytes"

const wavHeaderSize = 44

// CutPCM slices a byte buffer sampled at rate Hz between start and end
// seconds. Offsets count one byte per sample tick, matching the legacy
// cutter; zero bounds are open. A non-positive rate means SampleRate.
func CutPCM(data []byte, start, end float64, rate int) []byte {
	if rate <= 0 {
		rate = SampleRate
	}
	lo, hi := 0, len(data)
	if start > 0 {
		lo = min(int(start*float64(rate)), len(data))
	}
	if end > 0 {
		hi = min(max(int(end*float64(rate)-1), 0), len(data))
	}
	if lo > hi {
		return nil
	}
	return data[lo:hi]
}

// StripHeader drops a leading 44-byte RIFF header, if any.
func StripHeader(data []byte) []byte {
	if len(data) >= wavHeaderSize && bytes.HasPrefix(data, []byte("RIFF")) {
		return data[wavHeaderSize:]
	}
	return data
}

// PCMDuration returns the whole seconds of audio in a mono 16-bit buffer
// sampled at rate Hz, skipping a RIFF header when present. A non-positive
// rate means SampleRate.
func PCMDuration(data []byte, rate int) int {
	if rate <= 0 {
		rate = SampleRate
	}
	return len(StripHeader(data)) / 2 / rate
}
