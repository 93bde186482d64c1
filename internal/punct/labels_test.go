package punct

import (
	"context"
	"errors"
	"testing"
)

func TestMapCase(t *testing.T) {
	tests := []struct {
		token, label, want string
	}{
		{"hello", CaseLower, "hello"},
		{"hello", CaseUpper, "Hello"},
		{"nasa", CaseUpperTotal, "NASA"},
		{"привет", CaseUpper, "Привет"},
		{"", CaseUpper, ""},
		{"x", "UNKNOWN", "x"},
	}
	for _, tt := range tests {
		if got := MapCase(tt.token, tt.label); got != tt.want {
			t.Errorf("MapCase(%q, %q) = %q, want %q", tt.token, tt.label, got, tt.want)
		}
	}
}

func TestMapPunct(t *testing.T) {
	tests := []struct {
		label, want string
	}{
		{PunctNone, "word"},
		{PunctPeriod, "word."},
		{PunctComma, "word,"},
		{PunctQuestion, "word?"},
		{PunctExclamation, "word!"},
		{PunctColon, "word:"},
		{PunctSemicolon, "word;"},
	}
	for _, tt := range tests {
		if got := MapPunct("word", tt.label); got != tt.want {
			t.Errorf("MapPunct(word, %q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

type fixedPredictor struct {
	labels []Label
	err    error
}

func (f fixedPredictor) Predict(ctx context.Context, tokens []string) ([]Label, error) {
	return f.labels, f.err
}

func TestRestore_GluesSubwords(t *testing.T) {
	p := fixedPredictor{labels: []Label{
		{Case: CaseUpper, Punct: PunctNone},
		{Case: CaseLower, Punct: PunctNone},
		{Case: CaseLower, Punct: PunctPeriod},
	}}
	got, err := Restore(context.Background(), p, []string{"hello", "wor", "##ld"})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got != "Hello world." {
		t.Errorf("Restore = %q, want 'Hello world.'", got)
	}
}

func TestRestore_Empty(t *testing.T) {
	got, err := Restore(context.Background(), fixedPredictor{err: errors.New("unused")}, nil)
	if err != nil || got != "" {
		t.Errorf("Restore(nil) = %q, %v", got, err)
	}
}

func TestRestore_LabelMismatch(t *testing.T) {
	p := fixedPredictor{labels: []Label{{Case: CaseLower, Punct: PunctNone}}}
	if _, err := Restore(context.Background(), p, []string{"a", "b"}); err == nil {
		t.Error("expected error for label count mismatch")
	}
}
