package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/wenv/internal/ui/output"
	"go.trai.ch/wenv/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one coloured line per record:
// an optional level icon, the message, then dimmed key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler

	// attrs holds attributes added through WithAttrs, already rendered.
	attrs  string
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	msg := r.Message
	if icon != "" {
		msg = icon + " " + msg
	}

	var b strings.Builder
	b.WriteString(h.out.String(msg).Foreground(termenv.RGBColor(string(color))).String())

	attrs := h.attrs
	r.Attrs(func(attr slog.Attr) bool {
		attrs += renderAttr(h.prefix, attr)
		return true
	})
	if attrs != "" {
		b.WriteString(h.out.String(attrs).Faint().String())
	}
	b.WriteByte('\n')

	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a handler that appends attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rendered := h.attrs
	for _, attr := range attrs {
		rendered += renderAttr(h.prefix, attr)
	}

	clone := *h
	clone.attrs = rendered
	return &clone
}

// WithGroup returns a handler that qualifies subsequent attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func levelStyle(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	default:
		return "", style.Slate
	}
}

// renderAttr renders attr as " key=value", expanding groups into dotted keys.
func renderAttr(prefix string, attr slog.Attr) string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return ""
	}

	if attr.Value.Kind() == slog.KindGroup {
		group := prefix
		if attr.Key != "" {
			group += attr.Key + "."
		}
		var s string
		for _, nested := range attr.Value.Group() {
			s += renderAttr(group, nested)
		}
		return s
	}

	return " " + prefix + attr.Key + "=" + quoteValue(attr.Value.String())
}

// quoteValue quotes values that would otherwise be ambiguous on a key=value line.
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		return strconv.Quote(v)
	}
	return v
}
