package punct

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Punctuation priority levels.
const (
	priorityHigh   = 0
	priorityMedium = 1
	priorityLow    = 2
	priorityNone   = -1
)

var highPriority = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'\u3002': {}, '\uff01': {}, '\uff1f': {}, // 。！？
	'\u2026': {}, // …
}

var mediumPriority = map[rune]struct{}{
	';': {}, ':': {},
	'\uff1b': {}, '\uff1a': {}, // ；：
}

var lowPriority = map[rune]struct{}{
	',': {}, '-': {},
	'\uff0c': {}, '\u3001': {}, // ，、
}

// getPriority returns the priority of a punctuation rune.
func getPriority(r rune) int {
	if _, ok := highPriority[r]; ok {
		return priorityHigh
	}
	if _, ok := mediumPriority[r]; ok {
		return priorityMedium
	}
	if _, ok := lowPriority[r]; ok {
		return priorityLow
	}
	return priorityNone
}

// endsWithPunctuation returns the priority of the trailing punctuation of
// text, or priorityNone.
func endsWithPunctuation(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return priorityNone
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	if r == utf8.RuneError {
		return priorityNone
	}
	return getPriority(r)
}

// DefaultQuestions are words that turn a segment into a question when it
// starts with one of them.
var DefaultQuestions = []string{
	"who", "what", "when", "where", "why", "how", "which",
	"is", "are", "do", "does", "did", "can", "could", "would", "will",
}

// Rules is an offline Predictor. It capitalizes the first token and every
// token after sentence-final punctuation, and closes the segment with a
// period, or a question mark when it opens with a question word. Existing
// punctuation is never doubled.
type Rules struct {
	Questions []string
}

// NewRules returns a Rules predictor; a nil list selects DefaultQuestions.
func NewRules(questions []string) *Rules {
	if questions == nil {
		questions = DefaultQuestions
	}
	return &Rules{Questions: questions}
}

func (r *Rules) isQuestion(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, q := range r.Questions {
		if token == strings.ToLower(q) {
			return true
		}
	}
	return false
}

// Predict implements Predictor.
func (r *Rules) Predict(ctx context.Context, tokens []string) ([]Label, error) {
	labels := make([]Label, len(tokens))
	sentenceStart := true
	first := ""

	for i, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		labels[i] = Label{Case: CaseLower, Punct: PunctNone}
		if IsSubword(tok) {
			continue
		}
		if sentenceStart {
			labels[i].Case = CaseUpper
			if first == "" {
				first = tok
			}
		}
		sentenceStart = endsWithPunctuation(tok) == priorityHigh
	}

	// Close the segment on its last whole-word group.
	if n := len(tokens); n > 0 && endsWithPunctuation(tokens[n-1]) == priorityNone {
		if r.isQuestion(first) {
			labels[n-1].Punct = PunctQuestion
		} else {
			labels[n-1].Punct = PunctPeriod
		}
	}
	return labels, nil
}
