package trace

import (
	"io"

	"github.com/rs/zerolog"
)

// StreamTracer writes events as they happen through a zerolog logger.
type StreamTracer struct {
	w      io.Writer
	logger zerolog.Logger
	level  Level
}

func NewStreamTracer(w io.Writer, level Level, format Format, session string) *StreamTracer {
	return &StreamTracer{w: w, logger: NewLogger(w, format, session), level: level}
}

// Emit drops events the level filters out; heartbeats always pass.
func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind == KindHeartbeat || t.level.ShouldEmit(ev.Scope) {
		logEvent(t.logger, ev)
	}
}

func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }
