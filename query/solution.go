package query

import (
	"slices"
	"strings"

	"github.com/tsyren/rdf"
)

// Solution is a read-only view over one binding row. It is a lightweight
// wrapper, not a copy: it stays valid only as long as the underlying row is
// not rewritten by a modifier.
type Solution struct {
	row Binding
}

// Get returns the term bound to the named variable. The second return is
// false when the variable is unbound in this solution; an unbound lookup is
// not an error.
func (s Solution) Get(name string) (rdf.Term, bool) {
	t, ok := s.row[name]
	return t, ok
}

// Bound reports whether the named variable has a value in this solution.
func (s Solution) Bound(name string) bool {
	_, ok := s.row[name]
	return ok
}

// Len returns the number of bound variables in this solution.
func (s Solution) Len() int {
	return len(s.row)
}

// Vars returns the bound variable names in sorted order.
func (s Solution) Vars() []string {
	names := make([]string, 0, len(s.row))
	for name := range s.row {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String renders the solution as space-separated name=term pairs in sorted
// variable order.
func (s Solution) String() string {
	var sb strings.Builder
	for i, name := range s.Vars() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(s.row[name].String())
	}
	return sb.String()
}
