package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/glex/log"
)

// resolve returns a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// The document is converted as follows:
//   - If the document has a mapping under name, only that mapping is used
//   - Nested mappings are flattened by joining keys with hyphens, so that
//     log: {level: debug} configures --log-level
//   - Keys may use underscores in place of hyphens (log_level)
//   - Numbers are passed to kong as strings
//
// Example config file:
//
//	log:
//	  level: debug
//	  pretty: false
//	defs:
//	  - ~/.config/glex/defs.yaml
//
// Command-line flags override config file values.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if !errors.Is(err, io.EOF) {
				// Parse error - ignore the file
				log.Warn("ignoring malformed configuration",
					slog.String("error", err.Error()),
				)
			}

			return config{}, nil
		}

		if scope, ok := doc[name].(map[string]any); ok {
			doc = scope
		}

		cfg := make(config)
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten stores every leaf of m in r, keyed by its hyphen-joined path.
func (r config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := val.(map[string]any); ok {
			r.flatten(key, sub)

			continue
		}

		r[key] = native(val)
	}
}

// native converts a decoded YAML value into a form kong can decode into a
// flag. Kong requires numbers as strings for parsing.
func native(val any) any {
	switch v := val.(type) {
	case int, int64, uint64:
		return fmt.Sprint(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = native(e)
		}

		return list

	default:
		return v
	}
}
