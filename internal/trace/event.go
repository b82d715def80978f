package trace

import (
	"sync/atomic"
	"time"
)

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope - гранулярность события; меньшее значение = более крупное событие.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // команда CLI, пул файлов
	ScopePass                    // lex, parse, print
	ScopeFile                    // один файл в пуле
	ScopeNode                    // top-level statement
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Field is a key/value attached to an event, kept in insertion order.
type Field struct {
	Key   string
	Value string
}

// Event is one trace record. Seq is assigned once at creation, so the
// stream and the ring agree on ordering.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string // "parse", "file:pkg/mod.py"
	Detail   string
	Fields   []Field
	Elapsed  time.Duration // KindSpanEnd only
}

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func newEvent(kind Kind, scope Scope, name string) *Event {
	return &Event{
		Time:  time.Now(),
		Seq:   seqCounter.Add(1),
		Kind:  kind,
		Scope: scope,
		Name:  name,
	}
}
