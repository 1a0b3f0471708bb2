package ntriples

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsyren/rdf"
)

// ParseTerm parses a single term from its lexical rendering: <iri>, _:label,
// ?variable, or a quoted literal with an optional @lang or ^^<datatype>
// suffix. The whole input must be consumed.
func ParseTerm(s string) (rdf.Term, error) {
	p := &termParser{input: strings.TrimSpace(s)}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("trailing input after term: %q", p.input[p.pos:])
	}
	return t, nil
}

// termParser scans terms out of a single line. Position state persists
// across calls so the statement reader can pull three terms in a row.
type termParser struct {
	input string
	pos   int
}

func (p *termParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *termParser) rest() string {
	return p.input[p.pos:]
}

func (p *termParser) parseTerm() (rdf.Term, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("expected term, found end of input")
	}
	switch p.input[p.pos] {
	case '<':
		return p.parseIRI()
	case '_':
		return p.parseBlankNode()
	case '"':
		return p.parseLiteral()
	case '?':
		return p.parseVariable()
	default:
		return nil, fmt.Errorf("expected term, found %q", p.rest())
	}
}

func (p *termParser) parseIRI() (rdf.Term, error) {
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return nil, fmt.Errorf("unterminated IRI: %q", p.rest())
	}
	iri := rdf.NewIRI(p.input[p.pos+1 : p.pos+end])
	p.pos += end + 1
	return iri, nil
}

func (p *termParser) parseBlankNode() (rdf.Term, error) {
	if !strings.HasPrefix(p.rest(), "_:") {
		return nil, fmt.Errorf("malformed blank node: %q", p.rest())
	}
	p.pos += 2
	start := p.pos
	for p.pos < len(p.input) && !isTermBreak(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("blank node with empty label")
	}
	return rdf.BlankNode{ID: p.input[start:p.pos]}, nil
}

func (p *termParser) parseVariable() (rdf.Term, error) {
	p.pos++ // consume '?'
	start := p.pos
	for p.pos < len(p.input) && !isTermBreak(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("variable with empty name")
	}
	return rdf.NewVariable(p.input[start:p.pos]), nil
}

func (p *termParser) parseLiteral() (rdf.Term, error) {
	lexical, err := p.parseQuoted()
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasPrefix(p.rest(), "@"):
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && !isTermBreak(p.input[p.pos]) {
			p.pos++
		}
		lit, err := rdf.NewLangLiteral(lexical, p.input[start:p.pos])
		if err != nil {
			return nil, err
		}
		return lit, nil
	case strings.HasPrefix(p.rest(), "^^"):
		p.pos += 2
		if p.pos >= len(p.input) || p.input[p.pos] != '<' {
			return nil, fmt.Errorf("expected datatype IRI after ^^")
		}
		dt, err := p.parseIRI()
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(lexical, dt.(rdf.IRI)), nil
	default:
		return rdf.NewLiteral(lexical), nil
	}
}

// parseQuoted consumes a double-quoted string with N-Triples escapes:
// \t \n \r \" \\ \uXXXX \UXXXXXXXX.
func (p *termParser) parseQuoted() (string, error) {
	p.pos++ // consume opening '"'
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '"':
			p.pos++
			return sb.String(), nil
		case '\\':
			if p.pos+1 >= len(p.input) {
				return "", fmt.Errorf("dangling escape in literal")
			}
			p.pos++
			switch p.input[p.pos] {
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'u', 'U':
				digits := 4
				if p.input[p.pos] == 'U' {
					digits = 8
				}
				if p.pos+digits >= len(p.input) {
					return "", fmt.Errorf("truncated \\%c escape", p.input[p.pos])
				}
				code, err := strconv.ParseUint(p.input[p.pos+1:p.pos+1+digits], 16, 32)
				if err != nil {
					return "", fmt.Errorf("invalid \\%c escape: %w", p.input[p.pos], err)
				}
				sb.WriteRune(rune(code))
				p.pos += digits
			default:
				return "", fmt.Errorf("unknown escape \\%c in literal", p.input[p.pos])
			}
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated literal")
}

func isTermBreak(c byte) bool {
	return c == ' ' || c == '\t'
}
