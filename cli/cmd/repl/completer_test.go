package repl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/glex/argdef"
	"github.com/ardnew/glex/log"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	defs, err := newDefinitions(argdef.Sample(), log.Logger{})
	if err != nil {
		t.Fatalf("newDefinitions() error = %v", err)
	}

	history := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	return newModel(context.Background(), defs, history, log.Logger{})
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "--list", 6, "--list", 0, 6},
		{"second word", "-s --li", 7, "--li", 3, 7},
		{"assigned value", "--list=1,2", 10, "1,2", 7, 10},
		{"flag before equals", "--list=1,2", 4, "--list", 0, 6},
		{"empty at boundary", "-s ", 3, "", 3, 3},
		{"mid word", "--start", 3, "--start", 0, 7},
		{"at start", "--start", 0, "--start", 0, 7},
		{"cursor past end", "-s", 9, "-s", 0, 2},
		// Hyphens are part of flag names.
		{"hyphenated", "--dry-run", 9, "--dry-run", 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestEscaped(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		want   bool
	}{
		{"-s --li", 3, false},
		{"-s -- --li", 6, true},
		{"-s --", 3, false},
		{"--list=-- --st", 10, false},
	}

	for _, tt := range tests {
		if got := escaped(tt.input, tt.offset); got != tt.want {
			t.Errorf("escaped(%q, %d) = %v, want %v", tt.input, tt.offset, got, tt.want)
		}
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"all long flags", modeLex, "--", []string{"--list", "--start"}},
		{"fuzzy long flag", modeLex, "-s --li", []string{"--list"}},
		{"short flags are not completed", modeLex, "-l", nil},
		{"values are not completed", modeLex, "--list=--s", nil},
		{"escaped", modeLex, "-- --st", nil},
		{"free value", modeLex, "st", nil},
		{"control command", modeCtrl, "cl", []string{"clear"}},
		{"empty control word", modeCtrl, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, _, _ := m.computeMatches()

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("computeMatches(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestReplaceCurrentWord(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("-s --li 1,2")
	m.input.SetCursor(7)

	refreshMatches(&m, false)

	if len(m.matches) != 1 {
		t.Fatalf("matches = %v, want one", m.matches)
	}

	m, _ = m.cycle(1)

	if got, want := m.input.Value(), "-s --list 1,2"; got != want {
		t.Errorf("input = %q, want %q", got, want)
	}

	if got, want := m.input.Position(), 9; got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}
}

func TestDefinitions_Lex(t *testing.T) {
	m := newTestModel(t)
	ctx := context.Background()

	tokens, err := m.defs.lex(ctx, `-s --list '1,2'`)
	if err != nil {
		t.Fatalf("lex() error = %v", err)
	}

	if got := len(tokens); got != 2 {
		t.Errorf("lex() = %v, want 2 tokens", tokens)
	}

	tokens, err = m.defs.lex(ctx, `-s`)
	if err == nil || tokens == nil {
		t.Errorf("lex(-s) = %v, %v; want tokens and a rule violation", tokens, err)
	}

	if _, err := m.defs.lex(ctx, `--list '1,2`); err == nil {
		t.Error("lex() with an unterminated quote succeeded")
	}
}

func TestNewDefinitions_Empty(t *testing.T) {
	if _, err := newDefinitions(nil, log.Logger{}); err != ErrNoDefinitions {
		t.Errorf("newDefinitions(nil) error = %v, want %v", err, ErrNoDefinitions)
	}

	if _, err := newDefinitions(&argdef.File{}, log.Logger{}); err != ErrNoDefinitions {
		t.Errorf("newDefinitions(empty) error = %v, want %v", err, ErrNoDefinitions)
	}
}
