package argdef

import (
	"iter"
	"path/filepath"
	"strings"
)

//go:generate go tool stringer --linecomment --type Format --output format_string.go

// Format identifies the syntax of a definitions file.
type Format int

const (
	FormatYAML Format = iota // yaml
	FormatHCL                // hcl
)

// Formats returns an iterator over the names of all definition formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatYAML, FormatHCL} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format with the given name. JSON is accepted as an
// alias of YAML.
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml", "json":
		return FormatYAML, true
	case "hcl":
		return FormatHCL, true
	default:
		return 0, false
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, bool) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Ext returns the conventional file extension of f, including the dot.
func (f Format) Ext() string {
	if f == FormatHCL {
		return ".hcl"
	}

	return ".yaml"
}
