package align

import (
	"encoding/json"
	"fmt"
	"os"

	"speechalign/internal/transcript"
)

// Word is one recognized word, whatever recognizer produced it.
type Word struct {
	Start float64
	End   float64
	Text  string
	Conf  *float64
}

// Mid returns the temporal midpoint used for segment assignment.
func (w Word) Mid() float64 {
	return (w.Start + w.End) / 2
}

// Source is an ordered stream of recognized words.
type Source interface {
	Words() []Word
}

// ReplicaSource adapts an ASR transcript: the tokens of every replica are
// flattened in order.
type ReplicaSource transcript.Transcript

// Words implements Source.
func (s ReplicaSource) Words() []Word {
	var words []Word
	for _, r := range s {
		for _, tok := range r.Speech.Tokens {
			words = append(words, Word{Start: tok.Start, End: tok.End, Text: tok.Word, Conf: tok.Conf})
		}
	}
	return words
}

// VoskWord is an entry of a Vosk "result" list.
type VoskWord struct {
	Word  string   `json:"word"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Conf  *float64 `json:"conf,omitempty"`
}

// VoskResult is one recognizer response. Partial responses carry no result.
type VoskResult struct {
	Result []VoskWord `json:"result,omitempty"`
	Text   string     `json:"text,omitempty"`
}

// VoskResults adapts a list of Vosk responses.
type VoskResults []VoskResult

// Words implements Source.
func (v VoskResults) Words() []Word {
	var words []Word
	for _, res := range v {
		for _, w := range res.Result {
			words = append(words, Word{Start: w.Start, End: w.End, Text: w.Word, Conf: w.Conf})
		}
	}
	return words
}

// LoadVosk reads a JSON list of Vosk responses.
func LoadVosk(path string) (VoskResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vosk: %w", err)
	}
	var v VoskResults
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &transcript.FormatError{Index: -1, Reason: fmt.Sprintf("invalid vosk json: %v", err)}
	}
	return v, nil
}
