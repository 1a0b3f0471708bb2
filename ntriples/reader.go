// Package ntriples reads statements from line-oriented N-Triples input and
// parses the lexical term forms shared with it (<iri>, "literal", _:blank,
// ?variable). It is the statement-iteration interface the command-line front
// end feeds queries from; the query core itself never touches files.
package ntriples

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsyren/rdf"
)

// SyntaxError reports a malformed line with its 1-based line number.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Reader iterates statements out of N-Triples input, one line at a time.
// Blank lines and #-comment lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: sc}
}

// Next returns the next statement. It returns io.EOF at end of input and a
// *SyntaxError for a malformed line.
func (r *Reader) Next() (rdf.Statement, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := r.parseLine(line)
		if err != nil {
			return rdf.Statement{}, &SyntaxError{Line: r.line, Msg: err.Error()}
		}
		return st, nil
	}
	if err := r.scanner.Err(); err != nil {
		return rdf.Statement{}, err
	}
	return rdf.Statement{}, io.EOF
}

func (r *Reader) parseLine(line string) (rdf.Statement, error) {
	if !strings.HasSuffix(line, ".") {
		return rdf.Statement{}, fmt.Errorf("statement does not end with '.'")
	}
	p := &termParser{input: strings.TrimRight(line[:len(line)-1], " \t")}

	subject, err := p.parseTerm()
	if err != nil {
		return rdf.Statement{}, fmt.Errorf("subject: %w", err)
	}
	predicate, err := p.parseTerm()
	if err != nil {
		return rdf.Statement{}, fmt.Errorf("predicate: %w", err)
	}
	object, err := p.parseTerm()
	if err != nil {
		return rdf.Statement{}, fmt.Errorf("object: %w", err)
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return rdf.Statement{}, fmt.Errorf("trailing input after object: %q", p.rest())
	}
	for _, t := range []rdf.Term{subject, predicate, object} {
		if t.Kind() == rdf.KindVariable {
			return rdf.Statement{}, fmt.Errorf("variables are not allowed in data")
		}
	}
	return rdf.NewStatement(subject, predicate, object), nil
}

// ReadAll drains r into a statement slice.
func ReadAll(r io.Reader) ([]rdf.Statement, error) {
	reader := NewReader(r)
	var statements []rdf.Statement
	for {
		st, err := reader.Next()
		if err == io.EOF {
			return statements, nil
		}
		if err != nil {
			return nil, err
		}
		statements = append(statements, st)
	}
}

// Count drains r and returns the number of statements without retaining
// them.
func Count(r io.Reader) (int, error) {
	reader := NewReader(r)
	n := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
		n++
	}
}
