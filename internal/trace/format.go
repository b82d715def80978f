package trace

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output path
	FormatText                 // zerolog console writer
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, errors.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// NewLogger builds the zerolog logger events are written through.
// session is attached to every record when non-empty.
func NewLogger(w io.Writer, format Format, session string) zerolog.Logger {
	var out io.Writer = zerolog.SyncWriter(w)
	if format != FormatNDJSON {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: "15:04:05.000"}
	}
	ctx := zerolog.New(out).Level(zerolog.TraceLevel).With()
	if session != "" {
		ctx = ctx.Str("session", session)
	}
	return ctx.Logger()
}

func kindArrow(k Kind) string {
	switch k {
	case KindSpanBegin:
		return "→ "
	case KindSpanEnd:
		return "← "
	case KindHeartbeat:
		return "♡ "
	default:
		return "• "
	}
}

// logEvent writes ev as one zerolog record.
func logEvent(l zerolog.Logger, ev *Event) {
	e := l.WithLevel(scopeLevel(ev.Scope)).
		Time(zerolog.TimestampFieldName, ev.Time).
		Uint64("seq", ev.Seq).
		Str("kind", ev.Kind.String()).
		Str("scope", ev.Scope.String())
	if ev.SpanID != 0 {
		e = e.Uint64("span_id", ev.SpanID)
	}
	if ev.ParentID != 0 {
		e = e.Uint64("parent_id", ev.ParentID)
	}
	if ev.Detail != "" {
		e = e.Str("detail", ev.Detail)
	}
	if ev.Kind == KindSpanEnd {
		e = e.Float64("elapsed_ms", float64(ev.Elapsed)/float64(time.Millisecond))
	}
	if len(ev.Fields) > 0 {
		dict := zerolog.Dict()
		for _, f := range ev.Fields {
			dict = dict.Str(f.Key, f.Value)
		}
		e = e.Dict("extra", dict)
	}
	e.Msg(kindArrow(ev.Kind) + ev.Name)
}
