package query

import "github.com/tsyren/rdf"

// Pattern is one triple pattern: three terms, any of which may be a
// variable. The query core treats patterns as opaque provenance; Match is
// the producer-side bridge an external matcher uses to turn statements into
// binding rows. Joining multiple patterns is out of scope here.
type Pattern struct {
	Subject   rdf.Term
	Predicate rdf.Term
	Object    rdf.Term
}

// NewPattern creates a triple pattern.
func NewPattern(subject, predicate, object rdf.Term) *Pattern {
	return &Pattern{Subject: subject, Predicate: predicate, Object: object}
}

// Variables returns the distinct variables the pattern mentions, in
// subject, predicate, object position order.
func (p *Pattern) Variables() []rdf.Variable {
	var vars []rdf.Variable
	seen := make(map[string]bool, 3)
	for _, t := range []rdf.Term{p.Subject, p.Predicate, p.Object} {
		if v, ok := t.(rdf.Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			vars = append(vars, v)
		}
	}
	return vars
}

// Match tests the pattern against a single statement. On a match it returns
// a fresh binding row mapping each pattern variable to the statement term in
// its position. A variable repeated across positions must bind the same term
// in each. Non-variable pattern terms must equal the statement term exactly.
func (p *Pattern) Match(st rdf.Statement) (Binding, bool) {
	binding := make(Binding, 3)
	positions := [3]struct {
		pattern   rdf.Term
		statement rdf.Term
	}{
		{p.Subject, st.Subject},
		{p.Predicate, st.Predicate},
		{p.Object, st.Object},
	}
	for _, pos := range positions {
		if v, ok := pos.pattern.(rdf.Variable); ok {
			if prev, bound := binding[v.Name]; bound {
				if !rdf.TermsEqual(prev, pos.statement) {
					return nil, false
				}
				continue
			}
			binding[v.Name] = pos.statement
			continue
		}
		if !rdf.TermsEqual(pos.pattern, pos.statement) {
			return nil, false
		}
	}
	return binding, true
}
