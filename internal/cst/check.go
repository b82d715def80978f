package cst

import (
	"fmt"
	"strings"
)

// CheckSpans verifies the containment invariant for every node under root: each node's span
// starts at its first element and ends at its last, elements appear in source order, and
// no child lies outside its parent.
func CheckSpans(root Node) error {
	var errs []string
	Inspect(root, func(n Node) bool {
		els := n.Elements()
		if len(els) == 0 {
			errs = append(errs, fmt.Sprintf("%T has no elements", n))
			return false
		}
		sp := n.Span()
		first, last := els[0].Span(), els[len(els)-1].Span()
		if sp.Start != first.Start || sp.End != last.End {
			errs = append(errs, fmt.Sprintf("%T %s does not match its elements %s..%s", n, sp, first, last))
		}
		prev := sp.Start
		for _, el := range els {
			es := el.Span()
			if es.Start < prev || es.End < es.Start || !sp.Contains(es) {
				errs = append(errs, fmt.Sprintf("%T %s: element %s out of order or outside parent", n, sp, es))
			}
			prev = es.End
		}
		return true
	})
	if len(errs) > 0 {
		return fmt.Errorf("span check failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
