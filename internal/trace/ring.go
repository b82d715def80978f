package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory for a dump at exit.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int // куда писать следующее
	count int
	level Level
}

func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 4096
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (r *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !r.level.records(ev.Scope) {
		return
	}
	r.mu.Lock()
	r.buf[r.next] = *ev
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.count)
	start := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := range r.count {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

func (r *RingTracer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Dump writes the snapshot to w; FormatAuto means text.
func (r *RingTracer) Dump(w io.Writer, format Format) {
	if format == FormatAuto {
		format = FormatText
	}
	l := NewLogger(w, format, "")
	events := r.Snapshot()
	for i := range events {
		logEvent(l, &events[i])
	}
}

func (r *RingTracer) Flush() error { return nil }
func (r *RingTracer) Close() error { return nil }
func (r *RingTracer) Level() Level { return r.level }
