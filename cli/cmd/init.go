package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/glex/argdef"
	"github.com/ardnew/glex/log"
	"github.com/ardnew/glex/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init writes a sample definitions file, or with --config a configuration
// file holding the current flag values.
type Init struct {
	Force  bool   `help:"Overwrite an existing file"                                    short:"f"`
	Format string `help:"Definitions format (yaml|hcl); inferred from PATH by default"`
	Config bool   `help:"Write the configuration file (${config}) instead"              short:"c"`
	Path   string `help:"Definitions file to write"                                     arg:"" optional:"" default:"${defs}" type:"path"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if i.Config {
		confPath := kongVar(ctx, ConfigIdentifier)
		if confPath == "" {
			panic("internal error: config path undefined")
		}

		return i.write(ctx, confPath, func(file *os.File) error {
			enc := yaml.NewEncoder(file, yaml.Indent(defaultConfigIndent))

			return enc.EncodeContext(ctx, i.buildConfig(ctx))
		})
	}

	format, err := i.format()
	if err != nil {
		return err
	}

	return i.write(ctx, i.Path, func(file *os.File) error {
		return argdef.Sample().Encode(ctx, file, format)
	})
}

// format returns the definitions format named by --format, or the one
// implied by the extension of PATH, or YAML.
func (i *Init) format() (argdef.Format, error) {
	if i.Format != "" {
		f, ok := argdef.ParseFormat(i.Format)
		if !ok {
			return 0, argdef.ErrFormat.With(slog.String("format", i.Format))
		}

		return f, nil
	}

	if f, ok := argdef.FormatOf(i.Path); ok {
		return f, nil
	}

	return argdef.FormatYAML, nil
}

// write creates path, refusing to replace an existing file unless forced,
// and fills it with encode.
func (i *Init) write(ctx context.Context, path string, encode func(*os.File) error) error {
	if path == "" {
		return ErrWriteFile.Wrap(ErrNoDefinitions)
	}

	// Check if file exists and force not set
	_, err := os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteFile.
			With(slog.String("file", path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ErrWriteFile.
			With(slog.String("file", path)).
			Wrap(err)
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteFile.
			With(slog.String("file", path)).
			Wrap(err)
	}
	defer file.Close()

	if err := encode(file); err != nil {
		return ErrWriteFile.
			With(slog.String("file", path)).
			Wrap(err)
	}

	log.InfoContext(ctx, "wrote file", slog.String("path", path))

	return nil
}

// buildConfig collects the current value of every visible top-level flag in
// declaration order.
func (i *Init) buildConfig(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)

	var entries yaml.MapSlice

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(ktx, flag); val != nil {
			entries = append(entries, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return entries
}

// flagValue returns the configuration value of a CLI flag, or nil if it is
// empty. Values of named types are written as text.
func flagValue(ktx *kong.Context, flag *kong.Flag) any {
	switch v := ktx.FlagValue(flag).(type) {
	case nil:
		return nil

	case bool, int, int64, uint, uint64, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	default:
		if s := fmt.Sprint(v); s != "" {
			return s
		}

		return nil
	}
}
