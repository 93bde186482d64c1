package srt

import (
	"fmt"
	"math"
)

// FormatTime converts seconds to HH:MM:SS. Sub-second remainders are
// truncated, never rounded, and hours do not wrap at a day. Negative times
// clamp to zero.
func FormatTime(seconds float64) string {
	total := int64(math.Floor(math.Max(seconds, 0)))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
