package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsyren/rdf"
	"github.com/tsyren/rdf/ntriples"
	"github.com/tsyren/rdf/query"
)

// Pipeline is the YAML document describing one query run: a single triple
// pattern to match against the input, plus the solution modifiers to apply.
// Stages run in the conventional order filter, order, project, distinct,
// offset, limit; absent stages are skipped.
type Pipeline struct {
	Pattern  PatternDoc           `yaml:"pattern"`
	Filter   map[string]valueList `yaml:"filter"`
	Order    []string             `yaml:"order"`
	Project  []string             `yaml:"project"`
	Distinct bool                 `yaml:"distinct"`
	Offset   *int                 `yaml:"offset"`
	Limit    *int                 `yaml:"limit"`
}

// PatternDoc holds the three pattern positions in lexical term form:
// "?variable", "<iri>", "_:blank", or a quoted literal.
type PatternDoc struct {
	Subject   string `yaml:"subject"`
	Predicate string `yaml:"predicate"`
	Object    string `yaml:"object"`
}

// valueList accepts either a single YAML scalar or a sequence of scalars, so
// a filter entry can name one acceptable value or several.
type valueList []string

func (v *valueList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*v = valueList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = valueList(list)
		return nil
	default:
		return fmt.Errorf("filter values must be a scalar or a sequence, got %v", node.Kind)
	}
}

// LoadPipeline reads and decodes a pipeline document. Unknown fields are
// rejected so a typo'd stage name fails loudly instead of silently skipping.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Pipeline
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("pipeline document is empty")
		}
		return nil, err
	}
	return &p, nil
}

// CompilePattern parses the three pattern positions into a triple pattern.
// All three positions are required.
func (p *Pipeline) CompilePattern() (*query.Pattern, error) {
	if p.Pattern.Subject == "" || p.Pattern.Predicate == "" || p.Pattern.Object == "" {
		return nil, fmt.Errorf("pattern requires subject, predicate, and object")
	}
	positions := [3]struct {
		name string
		form string
	}{
		{"subject", p.Pattern.Subject},
		{"predicate", p.Pattern.Predicate},
		{"object", p.Pattern.Object},
	}
	var terms [3]rdf.Term
	for i, pos := range positions {
		t, err := ntriples.ParseTerm(pos.form)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", pos.name, err)
		}
		terms[i] = t
	}
	return query.NewPattern(terms[0], terms[1], terms[2]), nil
}

// CompileCriteria parses the filter stage's term forms into query criteria.
// Filter values must be concrete terms, not variables.
func (p *Pipeline) CompileCriteria() (query.Criteria, error) {
	if len(p.Filter) == 0 {
		return nil, nil
	}
	criteria := make(query.Criteria, len(p.Filter))
	for name, forms := range p.Filter {
		for _, form := range forms {
			t, err := ntriples.ParseTerm(form)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", name, err)
			}
			if t.Kind() == rdf.KindVariable {
				return nil, fmt.Errorf("filter %s: variables are not valid filter values", name)
			}
			criteria[name] = append(criteria[name], t)
		}
	}
	return criteria, nil
}

// Apply runs the pipeline's modifier stages against a populated query.
func (p *Pipeline) Apply(q *query.Query) error {
	criteria, err := p.CompileCriteria()
	if err != nil {
		return err
	}
	if len(criteria) > 0 {
		q.FilterByCriteria(criteria)
	}
	if len(p.Order) > 0 {
		if err := q.Order(p.Order...); err != nil {
			return err
		}
	}
	if len(p.Project) > 0 {
		q.Project(p.Project...)
	}
	if p.Distinct {
		q.Distinct()
	}
	if p.Offset != nil {
		q.Offset(*p.Offset)
	}
	if p.Limit != nil {
		q.Limit(*p.Limit)
	}
	return nil
}
