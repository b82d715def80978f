package diag

import (
	"sort"

	"fortio.org/safecast"

	"pycst/internal/source"
)

// Bag копит диагностики одного прогона с верхним пределом.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag holding at most max items; values outside uint16 saturate.
func NewBag(max int) *Bag {
	limit := saturate(max)
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 64)),
		max:   limit,
	}
}

func saturate(n int) uint16 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint16](n)
	if err != nil {
		return ^uint16(0)
	}
	return v
}

// Add returns false once the limit is reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items отдаёт внутренний срез; не менять.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return b.any(SevError) }

func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) any(atLeast Severity) bool {
	for i := range b.items {
		if b.items[i].Severity >= atLeast {
			return true
		}
	}
	return false
}

// Merge appends other's items, raising the limit so nothing is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil || len(other.items) == 0 {
		return
	}
	if need := len(b.items) + len(other.items); need > int(b.max) {
		b.max = saturate(need)
	}
	for _, d := range other.items {
		if !b.Add(d) {
			return
		}
	}
}

// Filter returns a new bag with the items at or above minSev, in order.
func (b *Bag) Filter(minSev Severity) *Bag {
	out := &Bag{max: b.max}
	for _, d := range b.items {
		if d.Severity >= minSev {
			out.items = append(out.items, d)
		}
	}
	return out
}

// Sort orders by file, start, end, then severity (errors first), then code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		pi, pj := b.items[i].Primary, b.items[j].Primary
		switch {
		case pi.File != pj.File:
			return pi.File < pj.File
		case pi.Start != pj.Start:
			return pi.Start < pj.Start
		case pi.End != pj.End:
			return pi.End < pj.End
		case b.items[i].Severity != b.items[j].Severity:
			return b.items[i].Severity > b.items[j].Severity
		}
		return b.items[i].Code < b.items[j].Code
	})
}

// Dedup keeps the first diagnostic per code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := key{d.Code, d.Primary}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}
