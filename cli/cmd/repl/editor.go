package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/glex/argdef"
	"github.com/ardnew/glex/log"
)

const defaultEditor = "vi"

// editDefsCommand implements [tea.ExecCommand] for the definitions
// edit-load-retry loop. It encodes the current definitions to a temp file,
// opens the user's editor, and rebuilds the lexer and grammar from the
// result. On error the user is prompted to re-edit; declining exits the
// program.
type editDefsCommand struct {
	file    *argdef.File
	ctxFunc func() context.Context
	newDefs *definitions
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDefsCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDefsCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDefsCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-load-retry loop. If the user declines to re-edit, it
// returns [ErrEditDeclined].
func (c *editDefsCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := c.file.Encode(ctx, &buf, argdef.FormatYAML); err != nil {
		return fmt.Errorf("encode definitions: %w", err)
	}

	content := buf.String()

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "glex-repl-*"+argdef.FormatYAML.Ext())
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		r, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// An empty file cancels the edit.
		br := bufio.NewReader(r)
		if _, err := br.Peek(1); err != nil {
			return nil
		}

		data, err := io.ReadAll(br)
		if err != nil {
			return err
		}

		defs, loadErr := c.load(ctx, data)
		c.logger.TraceContext(
			ctx,
			"editor load attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", loadErr == nil),
		)

		if loadErr == nil {
			c.newDefs = defs

			return nil
		}

		fmt.Fprintf(c.stderr, "\nDefinition error: %s\n", loadErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = string(data)
	}
}

// load parses the edited YAML and rebuilds everything derived from it.
func (c *editDefsCommand) load(ctx context.Context, data []byte) (*definitions, error) {
	f, err := argdef.Parse(ctx, data, argdef.FormatYAML, c.file.Path)
	if err != nil {
		return nil, err
	}

	return newDefinitions(f, c.logger)
}

// runEditor launches the user's editor on the given file path and returns a
// reader over the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) (io.Reader, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(data), nil
}
