package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCount(t *testing.T) {
	chunks := []string{"a", ";", "b", ";", "c"}

	tests := []struct {
		name string
		skip int
		want int
	}{
		{"all", 0, 2},
		{"negative skip", -1, 2},
		{"after first", 2, 1},
		{"past end", 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(chunks, ";", tt.skip); got != tt.want {
				t.Errorf("Count(%d) = %d, want %d", tt.skip, got, tt.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	chunks := []string{"a", "b", "c"}

	tests := []struct {
		name        string
		count, skip int
		want        []string
	}{
		{"head", 2, 0, []string{"a", "b"}},
		{"tail", 2, 1, []string{"b", "c"}},
		{"clamped count", 5, 1, []string{"b", "c"}},
		{"clamped skip", 1, 7, []string{}},
		{"negative", -1, -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Read(chunks, tt.count, tt.skip)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	got := Read(chunks, 1, 0)
	got[0] = "z"

	if chunks[0] != "a" {
		t.Error("Read() returned a slice sharing memory with its input")
	}
}

func TestReadUntil(t *testing.T) {
	chunks := []string{"-s", ";", "-l1", "x", ";", ";"}

	var segments [][]string

	at := 0
	for at < len(chunks) {
		segments = append(segments, ReadUntil(chunks, ";", &at))
		at++
	}

	want := [][]string{{"-s"}, {"-l1", "x"}, nil}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Errorf("ReadUntil() segments mismatch (-want +got):\n%s", diff)
	}

	at = 3
	if got := ReadUntil(chunks, "missing", &at); len(got) != 3 || at != len(chunks) {
		t.Errorf("ReadUntil(missing) = %q, at = %d", got, at)
	}
}
