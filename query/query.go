// Package query implements the solution-sequence stage of graph-pattern
// queries: the post-processing pipeline that shapes an already-materialized
// set of variable bindings through filtering, ordering, projection,
// deduplication, and pagination before results reach a consumer.
//
// A Query is populated once at construction with the bindings an external
// matcher produced, then mutated in place by zero or more modifiers. Every
// modifier returns quickly, runs to completion before returning, and only
// ever shrinks or reorders the sequence. The package performs no I/O and
// provides no internal locking: a Query must not be shared between goroutines
// without external synchronization, and enumerating solutions concurrently
// with a modifier call is undefined behavior.
package query

import (
	"iter"
	"maps"

	"github.com/tsyren/rdf"
)

// Binding is one raw solution row: a mapping from variable name to the term
// bound for it. Rows in a Query never share storage - mutating one row must
// not affect another.
type Binding map[string]rdf.Term

// Clone returns an independent copy of the binding.
func (b Binding) Clone() Binding {
	return maps.Clone(b)
}

// Query holds the declared pattern variables, the graph patterns that
// produced the bindings, and the mutable solution sequence the modifiers
// operate on. Variables and Patterns are never touched by modifiers; only
// the solution sequence changes.
type Query struct {
	// Variables maps each declared pattern variable name to its placeholder.
	// Declared is independent of bound: a variable listed here may be unbound
	// in any given solution.
	Variables map[string]rdf.Variable

	// Patterns is the ordered pattern list that produced the bindings.
	// Opaque pass-through state; no modifier reads or rewrites it.
	Patterns []*Pattern

	// Options holds unrecognized constructor options, retained opaquely and
	// never interpreted.
	Options map[string]any

	solutions []Binding
}

// Option configures a Query at construction.
type Option func(*Query)

// WithVariables declares pattern variables up front. Variables mentioned by
// patterns are added automatically; this is for declaring variables that no
// pattern mentions.
func WithVariables(vars ...rdf.Variable) Option {
	return func(q *Query) {
		for _, v := range vars {
			q.Variables[v.Name] = v
		}
	}
}

// WithPatterns sets the pattern list and declares every variable the
// patterns mention.
func WithPatterns(patterns ...*Pattern) Option {
	return func(q *Query) {
		q.Patterns = append(q.Patterns, patterns...)
		for _, p := range patterns {
			for _, v := range p.Variables() {
				q.Variables[v.Name] = v
			}
		}
	}
}

// WithSolutions seeds the solution sequence. Ownership of the rows passes to
// the Query: the caller must not retain or mutate them afterwards, and the
// rows must not share storage with each other. Construction is the only
// point at which solutions enter a Query; every modifier only removes,
// reorders, or restricts rows.
func WithSolutions(rows ...Binding) Option {
	return func(q *Query) {
		q.solutions = append(q.solutions, rows...)
	}
}

// WithOption attaches an opaque named option. The query core never
// interprets these; they ride along for the caller's benefit.
func WithOption(key string, value any) Option {
	return func(q *Query) {
		if q.Options == nil {
			q.Options = make(map[string]any)
		}
		q.Options[key] = value
	}
}

// New constructs a Query from the given options. A Query with no options is
// valid and empty.
func New(opts ...Option) *Query {
	q := &Query{Variables: make(map[string]rdf.Variable)}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Len returns the current number of solution rows in O(1). It always equals
// the number of views Solutions yields.
func (q *Query) Len() int {
	return len(q.solutions)
}

// Solutions returns a lazy, restartable sequence of read-only views, one per
// row currently in the query, in current order. Each view wraps its row
// without copying. The sequence reflects the state of the query at the time
// it is ranged over, not at the time Solutions was called: re-ranging after
// a modifier yields the modified sequence.
func (q *Query) Solutions() iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		for _, row := range q.solutions {
			if !yield(Solution{row: row}) {
				return
			}
		}
	}
}
