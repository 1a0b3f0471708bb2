package rdf

// Statement is one RDF triple. Subject, Predicate, and Object are concrete
// terms (IRI, Literal, or BlankNode); statements produced by parsing never
// contain variables.
type Statement struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewStatement creates a statement from three terms.
func NewStatement(subject, predicate, object Term) Statement {
	return Statement{Subject: subject, Predicate: predicate, Object: object}
}

// String renders the statement as an N-Triples line, terminated with " .".
func (s Statement) String() string {
	return s.Subject.String() + " " + s.Predicate.String() + " " + s.Object.String() + " ."
}

// IsZero reports whether the statement has no terms.
func (s Statement) IsZero() bool {
	return s.Subject == nil && s.Predicate == nil && s.Object == nil
}
