// Package punct restores casing and punctuation on bare recognized words.
package punct

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Case labels.
const (
	CaseLower      = "LOWER"
	CaseUpper      = "UPPER"
	CaseUpperTotal = "UPPER_TOTAL"
)

// Punctuation labels.
const (
	PunctNone        = "O"
	PunctPeriod      = "PERIOD"
	PunctComma       = "COMMA"
	PunctQuestion    = "QUESTION"
	PunctExclamation = "EXCLAMATION"
	PunctColon       = "COLON"
	PunctSemicolon   = "SEMICOLON"
)

var punctMarks = map[string]string{
	PunctPeriod:      ".",
	PunctComma:       ",",
	PunctQuestion:    "?",
	PunctExclamation: "!",
	PunctColon:       ":",
	PunctSemicolon:   ";",
}

// Label is the prediction for one token.
type Label struct {
	Case  string `json:"case"`
	Punct string `json:"punct"`
}

// Predictor predicts one label per token.
type Predictor interface {
	Predict(ctx context.Context, tokens []string) ([]Label, error)
}

// MapCase applies a case label to token.
func MapCase(token, label string) string {
	switch label {
	case CaseUpper:
		r, size := utf8.DecodeRuneInString(token)
		if r == utf8.RuneError {
			return token
		}
		return string(unicode.ToUpper(r)) + token[size:]
	case CaseUpperTotal:
		return strings.ToUpper(token)
	default:
		return token
	}
}

// MapPunct applies a punctuation label to token.
func MapPunct(token, label string) string {
	return token + punctMarks[label]
}

// IsSubword reports whether token continues the previous one.
func IsSubword(token string) bool {
	return strings.HasPrefix(token, "#")
}

// Restore runs tokens through p and renders the labelled text. Subword
// tokens are glued to their predecessor without a space.
func Restore(ctx context.Context, p Predictor, tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}
	labels, err := p.Predict(ctx, tokens)
	if err != nil {
		return "", err
	}
	if len(labels) != len(tokens) {
		return "", &labelCountError{want: len(tokens), got: len(labels)}
	}

	var sb strings.Builder
	for i, tok := range tokens {
		pred := MapPunct(MapCase(strings.TrimLeft(tok, "#"), labels[i].Case), labels[i].Punct)
		if i > 0 && !IsSubword(tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(pred)
	}
	return sb.String(), nil
}
