package align

import (
	"os"
	"path/filepath"
	"testing"

	"speechalign/internal/transcript"
)

func TestReplicaSource_Flattens(t *testing.T) {
	src := ReplicaSource{
		{Speech: transcript.Speech{Tokens: []transcript.Token{{Start: 0, End: 1, Word: "a"}}}},
		{Speech: transcript.Speech{}},
		{Speech: transcript.Speech{Tokens: []transcript.Token{{Start: 2, End: 3, Word: "b"}, {Start: 3, End: 4, Word: "c"}}}},
	}
	words := src.Words()
	if len(words) != 3 || words[0].Text != "a" || words[2].Text != "c" {
		t.Errorf("words = %+v", words)
	}
}

func TestLoadVosk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vosk.json")
	data := `[{"result":[{"conf":1.0,"end":0.75,"start":0.25,"word":"hi"}],"text":"hi"},{"text":""}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	v, err := LoadVosk(path)
	if err != nil {
		t.Fatalf("LoadVosk: %v", err)
	}
	words := v.Words()
	if len(words) != 1 || words[0].Text != "hi" || words[0].Mid() != 0.5 {
		t.Errorf("words = %+v", words)
	}
}

func TestLoadVosk_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vosk.json")
	os.WriteFile(path, []byte(`{"result":`), 0644)
	if _, err := LoadVosk(path); err == nil {
		t.Error("expected error for invalid json")
	}
}
