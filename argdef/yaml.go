package argdef

import (
	"context"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

func parseYAML(ctx context.Context, data []byte) (*File, error) {
	var f File

	err := yaml.UnmarshalContext(ctx, data, &f, yaml.DisallowUnknownField())
	if err != nil {
		return nil, errors.New(yaml.FormatError(err, false, true))
	}

	return &f, nil
}

func encodeYAML(ctx context.Context, w io.Writer, f *File) error {
	data, err := yaml.MarshalContext(ctx, f, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
