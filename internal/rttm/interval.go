package rttm

import (
	"strconv"

	"speechalign/internal/transcript"
)

// Interval is a record reduced to numeric bounds, keeping its position in
// the source sequence.
type Interval struct {
	Index int
	Start float64
	End   float64
	Name  string
}

// Span is the index-free view of an Interval.
type Span struct {
	Start float64
	End   float64
	Name  string
}

// Timestamp is the (index, start, duration) view of a record.
type Timestamp struct {
	Index    int
	Start    float64
	Duration float64
}

// Intervals converts records into intervals in their original order, with
// End computed once as start + duration.
func Intervals(records []Record) ([]Interval, error) {
	out := make([]Interval, 0, len(records))
	for i, r := range records {
		start, dur, err := bounds(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, Interval{Index: i, Start: start, End: start + dur, Name: r[ColName]})
	}
	return out, nil
}

// Timeline is Intervals without the positional index.
func Timeline(records []Record) ([]Span, error) {
	intervals, err := Intervals(records)
	if err != nil {
		return nil, err
	}
	out := make([]Span, len(intervals))
	for i, iv := range intervals {
		out[i] = Span{Start: iv.Start, End: iv.End, Name: iv.Name}
	}
	return out, nil
}

// Timestamps returns start and duration per record.
func Timestamps(records []Record) ([]Timestamp, error) {
	out := make([]Timestamp, 0, len(records))
	for i, r := range records {
		start, dur, err := bounds(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, Timestamp{Index: i, Start: start, Duration: dur})
	}
	return out, nil
}

func bounds(i int, r Record) (start, dur float64, err error) {
	start, err = parseFloat(i, "tbeg", r[ColStart])
	if err != nil {
		return 0, 0, err
	}
	dur, err = parseFloat(i, "tdur", r[ColDuration])
	if err != nil {
		return 0, 0, err
	}
	if dur < 0 {
		return 0, 0, &transcript.ParseError{Index: i, Field: "tdur", Value: r[ColDuration], Err: errNegative}
	}
	return start, dur, nil
}

func parseFloat(i int, field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &transcript.ParseError{Index: i, Field: field, Value: value, Err: err}
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
