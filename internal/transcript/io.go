package transcript

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a JSR document from path.
func Load(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jsr: %w", err)
	}
	return Decode(data)
}

// presence records which required blocks a replica carries.
type presence struct {
	Speech json.RawMessage `json:"speech"`
}

// Decode parses a JSR document. Every replica must carry a speech block;
// a missing time_end or duration is derived from the other two fields.
func Decode(data []byte) (Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, &FormatError{Index: -1, Reason: fmt.Sprintf("invalid jsr: %v", err)}
	}
	var blocks []presence
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, &FormatError{Index: -1, Reason: fmt.Sprintf("invalid jsr: %v", err)}
	}
	for i := range t {
		if len(blocks[i].Speech) == 0 || string(blocks[i].Speech) == "null" {
			return nil, &FormatError{Index: i, Reason: "missing speech"}
		}
		r := &t[i]
		if r.Speech.TimeEnd == 0 && r.Speech.Duration > 0 {
			r.Speech.TimeEnd = r.Speech.TimeStart + r.Speech.Duration
		}
		if r.Speech.Duration == 0 && r.Speech.TimeEnd > r.Speech.TimeStart {
			r.Speech.Duration = r.Speech.TimeEnd - r.Speech.TimeStart
		}
		if r.Speech.TimeEnd < r.Speech.TimeStart {
			return nil, &FormatError{Index: i, Reason: "time_end before time_start"}
		}
	}
	return t, nil
}

// Save writes t to path as indented JSON. The file is written whole; on
// failure its content is undefined.
func Save(path string, t Transcript) error {
	if t == nil {
		t = Transcript{}
	}
	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
