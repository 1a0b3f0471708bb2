package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsyren/rdf"
)

func TestNewEmptyQuery(t *testing.T) {
	q := New()

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Variables)
	assert.Empty(t, q.Patterns)
	for range q.Solutions() {
		t.Fatal("empty query must yield no solutions")
	}
}

func TestNewWithPatternsDeclaresVariables(t *testing.T) {
	p := NewPattern(
		rdf.NewVariable("s"),
		rdf.NewIRI("http://xmlns.com/foaf/0.1/name"),
		rdf.NewVariable("name"),
	)
	q := New(WithPatterns(p))

	require.Len(t, q.Patterns, 1)
	assert.Equal(t, map[string]rdf.Variable{
		"s":    rdf.NewVariable("s"),
		"name": rdf.NewVariable("name"),
	}, q.Variables)
	// Declared is independent of bound: no solutions exist yet.
	assert.Equal(t, 0, q.Len())
}

func TestNewWithVariables(t *testing.T) {
	q := New(WithVariables(rdf.NewVariable("x"), rdf.NewVariable("y")))

	assert.Len(t, q.Variables, 2)
	assert.Equal(t, rdf.NewVariable("x"), q.Variables["x"])
}

func TestNewWithOpaqueOptions(t *testing.T) {
	q := New(WithOption("dataset", "default"), WithOption("trace", 42))

	assert.Equal(t, "default", q.Options["dataset"])
	assert.Equal(t, 42, q.Options["trace"])
}

func TestLenMatchesYieldCount(t *testing.T) {
	q := New(WithSolutions(
		Binding{"x": rdf.NewLiteral("a")},
		Binding{"x": rdf.NewLiteral("b")},
		Binding{"x": rdf.NewLiteral("c")},
	))

	yields := 0
	for range q.Solutions() {
		yields++
	}
	assert.Equal(t, q.Len(), yields)
}

func TestSolutionsReflectsCurrentState(t *testing.T) {
	q := New(WithSolutions(
		Binding{"x": rdf.NewLiteral("a")},
		Binding{"x": rdf.NewLiteral("b")},
	))

	// Take the sequence before mutating; it is not a snapshot.
	seq := q.Solutions()

	q.Limit(1)

	var got []string
	for s := range seq {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{`x="a"`}, got)
}

func TestSolutionsIsRestartable(t *testing.T) {
	q := New(WithSolutions(
		Binding{"x": rdf.NewLiteral("a")},
		Binding{"x": rdf.NewLiteral("b")},
	))
	seq := q.Solutions()

	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}

func TestSolutionsEarlyBreak(t *testing.T) {
	q := New(WithSolutions(
		Binding{"x": rdf.NewLiteral("a")},
		Binding{"x": rdf.NewLiteral("b")},
		Binding{"x": rdf.NewLiteral("c")},
	))

	var got []string
	for s := range q.Solutions() {
		got = append(got, s.String())
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{`x="a"`, `x="b"`}, got)
	// Breaking out of enumeration never mutates the sequence.
	assert.Equal(t, 3, q.Len())
}

func TestBindingClone(t *testing.T) {
	orig := Binding{"x": rdf.NewLiteral("a")}
	clone := orig.Clone()
	clone["x"] = rdf.NewLiteral("changed")

	assert.Equal(t, rdf.Term(rdf.NewLiteral("a")), orig["x"])
}
