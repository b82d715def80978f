package diag

import "pycst/internal/source"

// Reporter принимает диагностики от лексера и парсера.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter складывает всё в Bag; лимит Bag соблюдается молча.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// DedupReporter drops a report when one with the same code, severity and
// primary span was already forwarded. The parser peeks up to two tokens
// ahead and may hit the same lexical error from two call sites.
type DedupReporter struct {
	next Reporter
	seen map[spanKey]struct{}
}

type spanKey struct {
	code Code
	sev  Severity
	span source.Span
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[spanKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := spanKey{code: code, sev: sev, span: primary}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}
