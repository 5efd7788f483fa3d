package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/glex/lexer"
)

const nodesYAML = `
arguments:
  - id: nodes
    long: list
    short: l
    arity: multi
    delimiter: ","
`

const startYAML = `
arguments:
  - id: start
    long: start
    short: s
rules:
  - name: start-needs-nodes
    expr: 'follows("start", "nodes")'
    message: the start action requires a list of nodes
  - name: no-free-values
    expr: len(free) == 0
    message: unexpected value(s) outside of any argument
`

const sampleYAML = `
arguments:
  - id: nodes
    long: list
    short: l
    arity: multi
    delimiter: ","
  - id: start
    long: start
    short: s
rules:
  - name: start-needs-nodes
    expr: 'follows("start", "nodes")'
    message: the start action requires a list of nodes
  - name: no-free-values
    expr: len(free) == 0
    message: unexpected value(s) outside of any argument
`

// writeFile creates a file named name in dir holding content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// pipe returns the read end of a pipe that yields content.
func pipe(t *testing.T, content string) *os.File {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { r.Close() })

	if _, err := w.WriteString(content); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return r
}

// withDefinitions stores the definition files in ctx, reading "-" from
// stdin.
func withDefinitions(
	ctx context.Context,
	sources []string,
	stdin *os.File,
) context.Context {
	return context.WithValue(ctx, definitionFilesKey{}, buildDefinitionFiles(sources, stdin))
}

// TestWithDefinitionFilesEmpty tests that an empty source list stores nothing.
func TestWithDefinitionFilesEmpty(t *testing.T) {
	ctx := WithDefinitionFiles(context.Background(), nil)
	if defs := definitionFilesFrom(ctx); defs != nil {
		t.Error("WithDefinitionFiles(nil) should store nil files")
	}

	ctx = WithDefinitionFiles(context.Background(), []string{})
	if defs := definitionFilesFrom(ctx); defs != nil {
		t.Error("WithDefinitionFiles([]) should store nil files")
	}

	if _, err := definitionFilesFrom(ctx).Load(ctx); !errors.Is(err, ErrNoDefinitions) {
		t.Errorf("Load() error = %v, want %v", err, ErrNoDefinitions)
	}
}

// TestBuildDefinitionFilesDuplicates tests that every way of naming the same
// file is loaded once.
func TestBuildDefinitionFilesDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "defs.yaml", sampleYAML)

	link := filepath.Join(dir, "link.yaml")
	if err := os.Symlink(path, link); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	stdin := pipe(t, "")

	tests := []struct {
		name    string
		sources []string
	}{
		{"same path", []string{path, path, path}},
		{"relative and absolute", []string{"defs.yaml", path}},
		{"symlink", []string{path, link}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := buildDefinitionFiles(tt.sources, stdin)
			if defs == nil {
				t.Fatal("buildDefinitionFiles() = nil")
			}

			if diff := cmp.Diff(tt.sources[:1], defs.Paths()); diff != "" {
				t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestBuildDefinitionFilesStdin tests that stdin is read once and last.
func TestBuildDefinitionFilesStdin(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nodes.yaml", nodesYAML)

	stdin := pipe(t, startYAML)

	ctx := withDefinitions(context.Background(), []string{"-", path, "-"}, stdin)

	defs := definitionFilesFrom(ctx)
	if diff := cmp.Diff([]string{path}, defs.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}

	files, err := defs.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := make([]string, len(files))
	for i, f := range files {
		got[i] = f.Path
	}

	if diff := cmp.Diff([]string{path, stdinSource}, got); diff != "" {
		t.Errorf("loaded files mismatch (-want +got):\n%s", diff)
	}
}

// TestDefinitionFilesLoadErrors tests that load failures name the file.
func TestDefinitionFilesLoadErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")
	bad := writeFile(t, dir, "bad.yaml", "arguments: [")

	tests := []struct {
		name    string
		sources []string
		stdin   string
		wantErr error
	}{
		{"missing file", []string{missing}, "", os.ErrNotExist},
		{"bad syntax", []string{bad}, "", ErrReadDefinitions},
		{"bad stdin", []string{"-"}, "arguments: [", ErrReadDefinitions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := withDefinitions(context.Background(), tt.sources, pipe(t, tt.stdin))

			_, err := definitionFilesFrom(ctx).Load(ctx)
			if !errors.Is(err, ErrReadDefinitions) || !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}

			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("Load() error %T is not a *cmd.Error", err)
			}

			var named bool
			for _, a := range cerr.attrs {
				named = named || a.Key == "path"
			}

			if !named {
				t.Errorf("error attributes %v do not name the file", cerr.attrs)
			}
		})
	}
}

// TestLoadDefinitions tests that arguments and rules combine across files.
func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "nodes.yaml", nodesYAML)
	start := writeFile(t, dir, "start.yaml", startYAML)

	ctx := withDefinitions(context.Background(), []string{nodes, start}, pipe(t, ""))

	defs, err := loadDefinitions(ctx)
	if err != nil {
		t.Fatalf("loadDefinitions() error = %v", err)
	}

	if got := defs.lexer.Len(); got != 2 {
		t.Errorf("lexer.Len() = %d, want 2", got)
	}

	if got := defs.grammar.Len(); got != 2 {
		t.Errorf("grammar.Len() = %d, want 2", got)
	}

	if diff := cmp.Diff([]string{"nodes", "start"}, defs.file.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}

	tokens, err := defs.lexer.Tokenize(ctx, []string{"-sl1,2"}, 0)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	if err := defs.grammar.Validate(ctx, tokens); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// TestLoadDefinitionsDuplicateAcrossFiles tests that one argument cannot be
// defined by two files.
func TestLoadDefinitionsDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", nodesYAML)
	b := writeFile(t, dir, "b.yaml", nodesYAML)

	ctx := withDefinitions(context.Background(), []string{a, b}, pipe(t, ""))

	_, err := loadDefinitions(ctx)
	if !errors.Is(err, ErrReadDefinitions) || !errors.Is(err, lexer.ErrDuplicateDefinition) {
		t.Errorf("loadDefinitions() error = %v, want %v", err, lexer.ErrDuplicateDefinition)
	}
}

// TestLoadDefinitionsUnknownRuleID tests that rules may only name defined
// arguments.
func TestLoadDefinitionsUnknownRuleID(t *testing.T) {
	dir := t.TempDir()
	start := writeFile(t, dir, "start.yaml", startYAML)

	ctx := withDefinitions(context.Background(), []string{start}, pipe(t, ""))

	if _, err := loadDefinitions(ctx); !errors.Is(err, ErrReadDefinitions) {
		t.Errorf("loadDefinitions() error = %v, want %v", err, ErrReadDefinitions)
	}
}
