package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermSealed(t *testing.T) {
	// Verify all variants implement Term (compile-time check via assignment)
	var _ Term = IRI{}
	var _ Term = Literal{}
	var _ Term = BlankNode{}
	var _ Term = Variable{}
}

func TestTermKinds(t *testing.T) {
	assert.Equal(t, KindIRI, NewIRI("http://example.org/s").Kind())
	assert.Equal(t, KindLiteral, NewLiteral("hello").Kind())
	assert.Equal(t, KindBlankNode, BlankNode{ID: "b1"}.Kind())
	assert.Equal(t, KindVariable, NewVariable("x").Kind())
}

func TestTermEqualityIsStructural(t *testing.T) {
	assert.True(t, TermsEqual(NewIRI("http://example.org/a"), NewIRI("http://example.org/a")))
	assert.False(t, TermsEqual(NewIRI("http://example.org/a"), NewIRI("http://example.org/b")))

	// Same lexical form, different variant: never equal.
	assert.False(t, TermsEqual(NewIRI("x"), NewLiteral("x")))
	assert.False(t, TermsEqual(BlankNode{ID: "x"}, NewVariable("x")))

	// Literal equality covers lexical form, datatype, and language tag.
	assert.True(t, TermsEqual(NewLiteral("5"), NewLiteral("5")))
	assert.False(t, TermsEqual(NewLiteral("5"), NewTypedLiteral("5", XSDInteger)))
	assert.False(t, TermsEqual(NewTypedLiteral("5", XSDInteger), NewTypedLiteral("5", XSDString)))

	en, err := NewLangLiteral("colour", "en-GB")
	require.NoError(t, err)
	plain := NewLiteral("colour")
	assert.False(t, TermsEqual(en, plain))

	assert.True(t, TermsEqual(nil, nil))
	assert.False(t, TermsEqual(nil, NewLiteral("x")))
}

func TestTermRenderings(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"iri", NewIRI("http://example.org/s"), "<http://example.org/s>"},
		{"plain literal", NewLiteral("Alice"), `"Alice"`},
		{"typed literal", NewTypedLiteral("5", XSDInteger), `"5"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"escaped literal", NewLiteral("line\nbreak"), `"line\nbreak"`},
		{"blank node", BlankNode{ID: "b1"}, "_:b1"},
		{"variable", NewVariable("name"), "?name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestLangLiteralCanonicalization(t *testing.T) {
	a, err := NewLangLiteral("colour", "EN-gb")
	require.NoError(t, err)
	b, err := NewLangLiteral("colour", "en-GB")
	require.NoError(t, err)

	assert.Equal(t, "en-gb", a.Lang)
	assert.True(t, TermsEqual(a, b))
	assert.Equal(t, `"colour"@en-gb`, a.String())
}

func TestLangLiteralRejectsInvalidTag(t *testing.T) {
	_, err := NewLangLiteral("x", "not a tag!")
	require.Error(t, err)
}

func TestNewBlankNodeMintsFreshIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		b := NewBlankNode()
		require.NotEmpty(t, b.ID)
		assert.False(t, seen[b.ID], "blank node id %q repeated", b.ID)
		seen[b.ID] = true
	}
}

func TestStatementString(t *testing.T) {
	st := NewStatement(
		NewIRI("http://example.org/alice"),
		NewIRI("http://xmlns.com/foaf/0.1/name"),
		NewLiteral("Alice"),
	)
	assert.Equal(t, `<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .`, st.String())
}

func TestStatementIsZero(t *testing.T) {
	assert.True(t, Statement{}.IsZero())
	assert.False(t, NewStatement(NewIRI("a"), NewIRI("b"), NewIRI("c")).IsZero())
}
