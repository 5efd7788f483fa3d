package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// layout describes how a pretty handler frames one record.
type layout struct {
	open, close string // written around the record
	indent      string // written before each field
	sep         string // written between fields
	assign      string // written between a key and its value
}

var (
	textLayout = layout{sep: " ", assign: "="}
	jsonLayout = layout{
		open: "{\n", close: "\n}", indent: "  ", sep: ",\n", assign: ": ",
	}
)

// prettyHandler implements a colorized handler shared by the pretty text and
// pretty JSON formats. Only the framing differs between the two.
type prettyHandler struct {
	layout
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	prefix     string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		layout:     textLayout,
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		layout:     jsonLayout,
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString(h.open)

	first := true
	field := func(key string, paint func()) {
		if !first {
			buf.WriteString(h.sep)
		}

		first = false

		buf.WriteString(h.indent)
		buf.WriteString(colorGray)
		buf.WriteString(key)
		buf.WriteString(colorReset)
		buf.WriteString(h.assign)
		paint()
	}

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			field(slog.TimeKey, func() { paint(buf, colorBlue, ts) })
		}
	}

	field(slog.LevelKey, func() { paintLevel(buf, r.Level) })

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			loc := fmt.Sprintf("%s:%d", src.File, src.Line)
			field(slog.SourceKey, func() { paint(buf, colorCyan, loc) })
		}
	}

	field(slog.MessageKey, func() { paint(buf, colorCyan, r.Message) })

	emit := func(a slog.Attr) bool {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			return true
		}

		field(h.prefix+a.Key, func() { paintValue(buf, a.Value) })

		return true
	}

	for _, a := range h.attrs {
		emit(a)
	}

	r.Attrs(emit)

	buf.WriteString(h.close)
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func paint(buf *bytes.Buffer, color, s string) {
	buf.WriteString(color)
	buf.WriteString(s)
	buf.WriteString(colorReset)
}

func paintLevel(buf *bytes.Buffer, level slog.Level) {
	name := strings.ToUpper(Level(level).String())

	switch {
	case level >= slog.LevelError:
		paint(buf, colorRed, name)
	case level >= slog.LevelWarn:
		paint(buf, colorYellow, name)
	case level >= slog.LevelInfo:
		paint(buf, colorGreen, name)
	default:
		paint(buf, colorBlue, name)
	}
}

func paintValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindInt64:
		paint(buf, colorYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		paint(buf, colorYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		paint(buf, colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			paint(buf, colorGreen, "true")
		} else {
			paint(buf, colorRed, "false")
		}

	case slog.KindDuration:
		paint(buf, colorMagenta, v.Duration().String())

	case slog.KindTime:
		paint(buf, colorBlue, v.Time().String())

	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.String())
		}

		paint(buf, colorCyan, "{"+strings.Join(parts, " ")+"}")

	default:
		if v.Kind() == slog.KindAny && v.Any() == nil {
			paint(buf, colorGray, "null")

			return
		}

		paint(buf, colorCyan, v.String())
	}
}
