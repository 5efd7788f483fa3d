package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/glex/argdef"
	"github.com/ardnew/glex/grammar"
	"github.com/ardnew/glex/lexer"
	"github.com/ardnew/glex/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable with the given identifier, or the empty
// string when ctx carries no kong context.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

type (
	definitionFilesKey struct{}

	// DefinitionFiles is the deduplicated, ordered list of definition files
	// named on the command line.
	DefinitionFiles struct {
		paths    []string
		stdin    io.Reader
		hasStdin bool
	}
)

// IsZero reports whether there are no definition files.
func (d *DefinitionFiles) IsZero() bool {
	return d == nil || (len(d.paths) == 0 && !d.hasStdin)
}

// Paths returns the resolved paths of the regular files in load order.
func (d *DefinitionFiles) Paths() []string {
	if d == nil {
		return nil
	}

	return append([]string(nil), d.paths...)
}

// Load reads every definition file in order. Definitions read from stdin are
// YAML and come last.
func (d *DefinitionFiles) Load(ctx context.Context) ([]*argdef.File, error) {
	if d.IsZero() {
		return nil, ErrNoDefinitions
	}

	files := make([]*argdef.File, 0, len(d.paths)+1)

	for _, path := range d.paths {
		f, err := argdef.Load(ctx, path)
		if err != nil {
			return nil, ErrReadDefinitions.Wrap(err).With(slog.String("path", path))
		}

		files = append(files, f)
	}

	if d.hasStdin {
		data, err := io.ReadAll(d.stdin)
		if err != nil {
			return nil, ErrReadDefinitions.Wrap(err).With(slog.String("path", stdinSource))
		}

		f, err := argdef.Parse(ctx, data, argdef.FormatYAML, stdinSource)
		if err != nil {
			return nil, ErrReadDefinitions.Wrap(err).With(slog.String("path", stdinSource))
		}

		files = append(files, f)
	}

	return files, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithDefinitionFiles returns a new context.Context containing the given
// definition files.
//
// The function deduplicates files by resolving symlinks and comparing device/
// inode pairs. All occurrences of "-" are replaced with a single stdin source
// placed last so it reads after all regular files.
func WithDefinitionFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, definitionFilesKey{}, buildDefinitionFiles(sources, os.Stdin))
}

// buildDefinitionFiles constructs DefinitionFiles from the given source paths.
func buildDefinitionFiles(sources []string, stdin *os.File) *DefinitionFiles {
	if len(sources) == 0 {
		return nil
	}

	defs := DefinitionFiles{
		paths: make([]string, 0, len(sources)),
		stdin: stdin,
	}

	seen := make(map[fileKey]struct{})

	var (
		stdinKey fileKey
		ok       bool
	)

	if stdinInfo, err := stdin.Stat(); err == nil {
		stdinKey, ok = makeFileKey(stdinInfo)
	}

	for _, src := range sources {
		if src == stdinSource {
			defs.hasStdin = true

			continue
		}

		path, key, unique := uniqueFile(src, seen)
		if !unique {
			continue
		}

		// Stdin named as a regular file, e.g. /dev/stdin.
		if ok && key == stdinKey {
			defs.hasStdin = true

			continue
		}

		defs.paths = append(defs.paths, path)
	}

	if defs.IsZero() {
		return nil
	}

	return &defs
}

// uniqueFile resolves path and reports whether the file it names has not
// been seen before. It resolves symlinks and uses device/inode to detect
// duplicates. Files that cannot be resolved are passed through so that
// loading reports the error.
func uniqueFile(path string, seen map[fileKey]struct{}) (string, fileKey, bool) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, fileKey{}, true
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return path, fileKey{}, true
	}

	// Get file info to extract device and inode.
	info, err := os.Stat(resolved)
	if err != nil {
		return path, fileKey{}, true
	}

	key, ok := makeFileKey(info)
	if !ok {
		return path, fileKey{}, true
	}

	if _, exists := seen[key]; exists {
		return "", key, false
	}

	seen[key] = struct{}{}

	// Keep the name the user gave so that the format can be inferred from
	// its extension even when it is a symlink.
	return path, key, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// definitionFilesFrom retrieves the files stored in ctx by
// WithDefinitionFiles. Returns nil if none were stored.
func definitionFilesFrom(ctx context.Context) *DefinitionFiles {
	d, _ := ctx.Value(definitionFilesKey{}).(*DefinitionFiles)

	return d
}

// definitions is everything built from the loaded definition files.
type definitions struct {
	file    *argdef.File
	lexer   *lexer.Lexer
	grammar *grammar.Grammar
}

// loadDefinitions loads the definition files in ctx and registers their
// arguments with a single lexer, so an argument may not be defined twice
// across files.
func loadDefinitions(ctx context.Context) (*definitions, error) {
	files, err := definitionFilesFrom(ctx).Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := log.Default()
	l := lexer.New(lexer.WithLogger(logger))

	for _, f := range files {
		if err := f.Register(l.Registry); err != nil {
			return nil, ErrReadDefinitions.Wrap(err)
		}
	}

	merged := argdef.Merge(files...)

	g, err := merged.Grammar(grammar.WithLogger(logger))
	if err != nil {
		return nil, ErrReadDefinitions.Wrap(err)
	}

	log.DebugContext(ctx, "definitions loaded",
		slog.Int("files", len(files)),
		slog.Int("arguments", l.Len()),
		slog.Int("rules", g.Len()),
	)

	return &definitions{file: merged, lexer: l, grammar: g}, nil
}
