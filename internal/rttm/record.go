// Package rttm reads and writes the NIST RTTM fixed-column format and turns
// its records into numeric time intervals.
//
//	Field 1    2     3     4     5     6      7      8     9     10
//	      Type file  chnl  tbeg  tdur  ortho  stype  name  conf  slat
package rttm

import (
	"fmt"
	"os"
	"strings"

	"speechalign/internal/transcript"
)

// NA marks an absent optional field.
const NA = "<NA>"

// Column positions within a record.
const (
	ColType = iota
	ColFile
	ColChannel
	ColStart
	ColDuration
	ColOrtho
	ColSType
	ColName
	ColConf
	ColSlat

	NumFields
)

// Record is one RTTM line. All fields are kept as text and parsed on demand.
type Record [NumFields]string

// NewSpeaker builds a SPEAKER record with placeholder auxiliary fields.
func NewSpeaker(start, duration, name, conf string) Record {
	return Record{"SPEAKER", NA, "1", start, duration, NA, NA, name, conf, NA}
}

// Parse splits RTTM text into records. Blank lines are skipped; any other
// line must hold exactly ten single-space separated fields.
func Parse(text string) ([]Record, error) {
	var records []Record
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, " ")
		if len(fields) != NumFields {
			return nil, &transcript.FormatError{
				Index:  len(records),
				Reason: fmt.Sprintf("expected %d fields, got %d", NumFields, len(fields)),
			}
		}
		var r Record
		copy(r[:], fields)
		records = append(records, r)
	}
	return records, nil
}

// Format joins records back into RTTM text, one record per line.
func Format(records []Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = strings.Join(r[:], " ")
	}
	return strings.Join(lines, "\n")
}

// ReadFile loads and parses an RTTM file.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rttm: %w", err)
	}
	return Parse(string(data))
}

// WriteFile writes records to path as a whole-file write.
func WriteFile(path string, records []Record) error {
	return os.WriteFile(path, []byte(Format(records)), 0644)
}
