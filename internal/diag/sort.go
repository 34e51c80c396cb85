package diag

import "sort"

// Sort orders diagnostics by source line; diagnostics without a line follow
// all line-scoped ones. Ties keep their emission order.
func Sort(errs []Diagnostic) {
	sort.SliceStable(errs, func(i, j int) bool {
		li, lj := errs[i].Line, errs[j].Line
		switch {
		case li == lj:
			return false
		case li == NoLine:
			return false
		case lj == NoLine:
			return true
		default:
			return li < lj
		}
	})
}
