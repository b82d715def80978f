package trace

import (
	"context"
	"sync"
	"time"
)

type ctxKey struct{}

// ctxState - трейсер и текущий span, лежащие в context.
type ctxState struct {
	tracer Tracer
	span   uint64
}

func current(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// FromContext returns the tracer in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return current(ctx).tracer
}

// Enabled reports whether events of scope would be recorded for ctx.
func Enabled(ctx context.Context, scope Scope) bool {
	return current(ctx).tracer.Level().records(scope)
}

// Span is an open begin/end pair. A nil *Span is valid and does nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	fields  []Field
}

// StartSpan opens a span under the current one in ctx and returns a ctx in
// which it is current. When scope is not recorded it returns ctx and nil.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	st := current(ctx)
	if !st.tracer.Level().records(scope) {
		return ctx, nil
	}
	s := &Span{
		tracer: st.tracer,
		id:     spanCounter.Add(1),
		parent: st.span,
		scope:  scope,
		name:   name,
	}
	ev := newEvent(KindSpanBegin, scope, name)
	ev.SpanID, ev.ParentID = s.id, s.parent
	s.started = ev.Time
	openSpans.add(s)
	s.tracer.Emit(ev)
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: st.tracer, span: s.id}), s
}

// WithExtra attaches a field to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s != nil {
		s.fields = append(s.fields, Field{Key: key, Value: value})
	}
	return s
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	openSpans.remove(s.id)
	ev := newEvent(KindSpanEnd, s.scope, s.name)
	ev.SpanID, ev.ParentID = s.id, s.parent
	ev.Detail = detail
	ev.Fields = s.fields
	ev.Elapsed = ev.Time.Sub(s.started)
	s.tracer.Emit(ev)
	return ev.Elapsed
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under the current span in ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	st := current(ctx)
	if !st.tracer.Level().records(scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.ParentID = st.span
	ev.Detail = detail
	st.tracer.Emit(ev)
}

// openSpans - все незакрытые spans процесса, для heartbeat.
var openSpans = &spanSet{m: make(map[uint64]*Span)}

type spanSet struct {
	mu sync.Mutex
	m  map[uint64]*Span
}

func (o *spanSet) add(s *Span) {
	o.mu.Lock()
	o.m[s.id] = s
	o.mu.Unlock()
}

func (o *spanSet) remove(id uint64) {
	o.mu.Lock()
	delete(o.m, id)
	o.mu.Unlock()
}

// oldest returns the number of open spans and the longest-running
// ScopeFile span among them, falling back to any span.
func (o *spanSet) oldest() (int, *Span) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var best *Span
	for _, s := range o.m {
		switch {
		case best == nil:
			best = s
		case (s.scope == ScopeFile) != (best.scope == ScopeFile):
			if s.scope == ScopeFile {
				best = s
			}
		case s.started.Before(best.started):
			best = s
		}
	}
	return len(o.m), best
}
