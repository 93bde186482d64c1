package rttm

import (
	"errors"
	"path/filepath"
	"testing"

	"speechalign/internal/transcript"
)

const sample = `SPEAKER f 1 0.0 5.0 <NA> <NA> spk1 0.9 <NA>
SPEAKER f 1 10.0 5.0 <NA> <NA> spk2 <NA> <NA>

`

func TestParse(t *testing.T) {
	records, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0][ColName] != "spk1" || records[1][ColStart] != "10.0" {
		t.Errorf("unexpected records: %v", records)
	}
}

func TestParse_SkipsBlankLines(t *testing.T) {
	records, err := Parse("\n \nSPEAKER f 1 0 1 <NA> <NA> a <NA> <NA>\r\n\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len = %d, want 1", len(records))
	}
}

func TestParse_WrongFieldCount(t *testing.T) {
	_, err := Parse("SPEAKER f 1 0 1 <NA> <NA> a <NA> <NA>\nSPEAKER f 1 0 1 a")
	var fe *transcript.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
	if fe.Index != 1 {
		t.Errorf("Index = %d, want 1", fe.Index)
	}
}

func TestFormat(t *testing.T) {
	records := []Record{
		NewSpeaker("0", "1.5", "a", NA),
		NewSpeaker("2", "1", "b", "0.5"),
	}
	want := "SPEAKER <NA> 1 0 1.5 <NA> <NA> a <NA> <NA>\nSPEAKER <NA> 1 2 1 <NA> <NA> b 0.5 <NA>"
	if got := Format(records); got != want {
		t.Errorf("Format =\n%s\nwant\n%s", got, want)
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.rttm")
	in, _ := Parse(sample)
	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(out) != len(in) || out[1] != in[1] {
		t.Errorf("read back %v, want %v", out, in)
	}
}
