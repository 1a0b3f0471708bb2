package query

import (
	"slices"
	"strings"

	"github.com/tsyren/rdf"
)

// Criteria maps a variable name to its acceptable values. A row satisfies a
// criterion when its bound value for that name equals one of the listed
// terms; a name absent from the criteria imposes no constraint.
type Criteria map[string][]rdf.Term

// Predicate decides whether a solution survives FilterByPredicate. An error
// from the predicate aborts the filter pass and propagates to the caller.
type Predicate func(Solution) (bool, error)

// FilterByCriteria removes every row that fails any criterion: for each name
// in the criteria, the row must bind that name to a term equal to one of the
// acceptable values. A row missing a name listed in the criteria fails that
// criterion - unbound never equals a required value. Empty criteria keep all
// rows. Surviving rows keep their relative order. Returns the Query for
// chaining.
func (q *Query) FilterByCriteria(criteria Criteria) *Query {
	if len(criteria) == 0 {
		return q
	}
	q.removeIf(func(row Binding) bool {
		return !matchesCriteria(row, criteria)
	})
	return q
}

// FilterByPredicate removes every row the predicate rejects, preserving the
// relative order of survivors. A predicate error aborts the pass and is
// returned unchanged: rows scanned before the failure keep their filtered
// result, while the failing row and all rows after it remain in place. The
// sequence is always left in a valid state.
func (q *Query) FilterByPredicate(pred Predicate) error {
	kept := q.solutions[:0]
	for i, row := range q.solutions {
		ok, err := pred(Solution{row: row})
		if err != nil {
			// Keep the unscanned tail, then truncate past it.
			kept = append(kept, q.solutions[i:]...)
			clearTail(q.solutions, len(kept))
			q.solutions = kept
			return err
		}
		if ok {
			kept = append(kept, row)
		}
	}
	clearTail(q.solutions, len(kept))
	q.solutions = kept
	return nil
}

func matchesCriteria(row Binding, criteria Criteria) bool {
	for name, accepted := range criteria {
		bound, ok := row[name]
		if !ok {
			return false
		}
		match := false
		for _, want := range accepted {
			if rdf.TermsEqual(bound, want) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}

// removeIf is the shared removal routine behind both filter modes and
// Distinct: it compacts the sequence in place, dropping rows for which drop
// returns true and preserving the relative order of the rest.
func (q *Query) removeIf(drop func(Binding) bool) {
	kept := q.solutions[:0]
	for _, row := range q.solutions {
		if !drop(row) {
			kept = append(kept, row)
		}
	}
	clearTail(q.solutions, len(kept))
	q.solutions = kept
}

// clearTail nils out rows past the kept prefix so dropped bindings can be
// collected.
func clearTail(rows []Binding, from int) {
	for i := from; i < len(rows); i++ {
		rows[i] = nil
	}
}

// Order stably reorders the sequence into ascending order by a composite
// key: for each row, the tuple of string-rendered values of the requested
// variables in request order, compared component by component. A variable
// unbound in a row renders as the empty string, which sorts before every
// bound rendering (all bound forms are non-empty: <iri>, "literal", _:id,
// ?name). Ties keep their original relative order. This is a deliberately
// simple lexical order over renderings, not type-aware ORDER BY: numbers,
// dates, and IRIs all compare as text.
//
// Returns ErrNoOrderVariables when called with no variable names.
func (q *Query) Order(names ...string) error {
	if len(names) == 0 {
		return ErrNoOrderVariables
	}
	type keyed struct {
		key []string
		row Binding
	}
	rows := make([]keyed, len(q.solutions))
	for i, row := range q.solutions {
		key := make([]string, len(names))
		for j, name := range names {
			if t, ok := row[name]; ok {
				key[j] = t.String()
			}
		}
		rows[i] = keyed{key: key, row: row}
	}
	slices.SortStableFunc(rows, func(a, b keyed) int {
		return slices.Compare(a.key, b.key)
	})
	for i, r := range rows {
		q.solutions[i] = r.row
	}
	return nil
}

// Project restricts every row to the named variables, deleting all other
// keys in place. Calling Project with no names is a no-op. The row count
// never changes. Projection can make previously-distinct rows equal; callers
// wanting distinct results after projecting must call Distinct afterwards.
// Returns the Query for chaining.
func (q *Query) Project(names ...string) *Query {
	if len(names) == 0 {
		return q
	}
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}
	for _, row := range q.solutions {
		for name := range row {
			if !keep[name] {
				delete(row, name)
			}
		}
	}
	return q
}

// Distinct removes duplicate rows, keeping the first occurrence of each
// distinct row in order. Two rows are duplicates when they bind exactly the
// same variable names to equal terms. Returns the Query for chaining.
func (q *Query) Distinct() *Query {
	seen := make(map[string]bool, len(q.solutions))
	q.removeIf(func(row Binding) bool {
		key := bindingKey(row)
		if seen[key] {
			return true
		}
		seen[key] = true
		return false
	})
	return q
}

// Reduced is a permissive alias for Distinct: REDUCED semantics allow but do
// not require duplicate elimination, and this implementation always
// eliminates.
func (q *Query) Reduced() *Query {
	return q.Distinct()
}

// bindingKey builds a canonical string for full-mapping equality. Term
// renderings are unambiguous across variants, so name=rendering pairs in
// sorted name order identify a row exactly.
func bindingKey(row Binding) string {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	slices.Sort(names)
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(row[name].String())
		sb.WriteByte(0)
	}
	return sb.String()
}

// Slice is the pagination primitive: it keeps at most length rows starting
// at index start, discarding everything before and after. A start at or past
// the current row count empties the sequence; a length running past the end
// keeps whatever remains. Negative start or length is treated as zero.
// Returns the Query for chaining.
func (q *Query) Slice(start, length int) *Query {
	if start < 0 {
		start = 0
	}
	if length < 0 {
		length = 0
	}
	if start >= len(q.solutions) {
		clearTail(q.solutions, 0)
		q.solutions = q.solutions[:0]
		return q
	}
	end := len(q.solutions)
	if length < end-start {
		end = start + length
	}
	kept := copy(q.solutions, q.solutions[start:end])
	clearTail(q.solutions, kept)
	q.solutions = q.solutions[:kept]
	return q
}

// Offset discards the first start rows, keeping the rest. Evaluated eagerly
// against the current row count. Returns the Query for chaining.
func (q *Query) Offset(start int) *Query {
	return q.Slice(start, len(q.solutions)-start)
}

// Limit keeps at most the first length rows. Returns the Query for chaining.
func (q *Query) Limit(length int) *Query {
	return q.Slice(0, length)
}
