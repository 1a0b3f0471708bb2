// Package rdf provides the typed term model for RDF data: IRIs, literals,
// blank nodes, and query variables, plus the Statement triple built from them.
//
// Terms are small comparable value types behind a sealed interface, so
// structural equality is plain ==: two terms are equal iff they are the same
// variant with the same content (IRI string; literal lexical form, datatype,
// and language tag; blank node identifier; variable name).
package rdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// TermKind identifies the variant of a Term.
type TermKind uint8

const (
	// KindIRI is an IRI reference.
	KindIRI TermKind = iota
	// KindLiteral is a literal with optional datatype or language tag.
	KindLiteral
	// KindBlankNode is a locally-scoped blank node.
	KindBlankNode
	// KindVariable is a query variable placeholder.
	KindVariable
)

// Term is a sealed interface over the four RDF term variants.
// Only IRI, Literal, BlankNode, and Variable implement it.
//
// String returns the lexical N-Triples-style rendering of the term. This
// rendering is what the query package compares when ordering solutions, so it
// must be deterministic and unambiguous across variants (each variant carries
// distinct decoration: <iri>, "literal", _:blank, ?variable).
type Term interface {
	Kind() TermKind
	String() string
	term() // Marker method - seals interface to this package
}

// Well-known datatype IRIs.
var (
	XSDString  = IRI{Value: "http://www.w3.org/2001/XMLSchema#string"}
	XSDInteger = IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}
	XSDBoolean = IRI{Value: "http://www.w3.org/2001/XMLSchema#boolean"}
)

// IRI is an IRI reference term.
type IRI struct {
	Value string
}

func (IRI) term() {}

// Kind returns KindIRI.
func (IRI) Kind() TermKind { return KindIRI }

// String renders the IRI in angle brackets.
func (i IRI) String() string { return "<" + i.Value + ">" }

// IsZero reports whether the IRI is empty.
func (i IRI) IsZero() bool { return i.Value == "" }

// NewIRI creates an IRI term.
func NewIRI(value string) IRI {
	return IRI{Value: value}
}

// Literal is a literal term: a lexical form with an optional datatype IRI or
// language tag. A literal carries at most one of the two; NewLangLiteral and
// NewTypedLiteral enforce this at construction.
type Literal struct {
	Lexical  string
	Datatype IRI
	Lang     string
}

func (Literal) term() {}

// Kind returns KindLiteral.
func (Literal) Kind() TermKind { return KindLiteral }

// String renders the literal as a quoted lexical form with its @lang or
// ^^<datatype> suffix, if any.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if !l.Datatype.IsZero() {
		return fmt.Sprintf("%q^^%s", l.Lexical, l.Datatype.String())
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// NewLiteral creates a plain literal with no datatype or language tag.
func NewLiteral(lexical string) Literal {
	return Literal{Lexical: lexical}
}

// NewTypedLiteral creates a literal with a datatype IRI.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// NewLangLiteral creates a language-tagged literal. The tag must be a valid
// BCP 47 language tag; it is canonicalized and stored lowercase, so literals
// tagged "en-US" and "EN-us" are equal.
func NewLangLiteral(lexical, lang string) (Literal, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return Literal{}, fmt.Errorf("invalid language tag %q: %w", lang, err)
	}
	return Literal{Lexical: lexical, Lang: strings.ToLower(tag.String())}, nil
}

// BlankNode is a locally-scoped node with no global identifier.
type BlankNode struct {
	ID string
}

func (BlankNode) term() {}

// Kind returns KindBlankNode.
func (BlankNode) Kind() TermKind { return KindBlankNode }

// String renders the blank node label with the _: prefix.
func (b BlankNode) String() string { return "_:" + b.ID }

// NewBlankNode mints a blank node with a fresh random identifier.
func NewBlankNode() BlankNode {
	return BlankNode{ID: "b" + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// Variable is a named placeholder standing for an unknown term in a pattern.
// A variable is declared by a pattern; whether it is bound in any given
// solution is a property of that solution, not of the variable.
type Variable struct {
	Name string
}

func (Variable) term() {}

// Kind returns KindVariable.
func (Variable) Kind() TermKind { return KindVariable }

// String renders the variable with the ? prefix.
func (v Variable) String() string { return "?" + v.Name }

// NewVariable creates a named variable.
func NewVariable(name string) Variable {
	return Variable{Name: name}
}

// TermsEqual reports structural equality between two terms, treating two nil
// terms as equal. All term variants are comparable value types, so this is
// interface equality.
func TermsEqual(a, b Term) bool {
	return a == b
}
