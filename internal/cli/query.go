package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsyren/rdf/ntriples"
	"github.com/tsyren/rdf/query"
)

// QueryResult holds the query command's output: one map per solution, each
// mapping a variable name to the lexical rendering of its bound term.
type QueryResult struct {
	File      string              `json:"file"`
	Solutions []map[string]string `json:"solutions"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	var pipelinePath string

	cmd := &cobra.Command{
		Use:   "query <file.nt>",
		Short: "Match a triple pattern and shape the solution sequence",
		Long: `Read an N-Triples file, match the pipeline's triple pattern against
every statement to produce solutions, then apply the pipeline's modifiers
(filter, order, project, distinct, offset, limit) and print the result.

The pipeline document is YAML:

  pattern: {subject: "?s", predicate: "<http://xmlns.com/foaf/0.1/name>", object: "?name"}
  filter: {name: '"Alice"'}
  order: [name]
  project: [name]
  distinct: true
  limit: 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, args[0], pipelinePath, cmd)
		},
	}

	cmd.Flags().StringVar(&pipelinePath, "pipeline", "", "pipeline YAML file (required)")
	cmd.MarkFlagRequired("pipeline")

	return cmd
}

func runQuery(opts *RootOptions, dataPath, pipelinePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	pipeline, err := LoadPipeline(pipelinePath)
	if err != nil {
		formatter.Error(ErrCodePipeline, fmt.Sprintf("cannot load pipeline %s", pipelinePath), err.Error())
		return WrapExitError(ExitCommandError, ErrCodePipeline, err)
	}

	pattern, err := pipeline.CompilePattern()
	if err != nil {
		formatter.Error(ErrCodePipeline, "invalid pattern", err.Error())
		return WrapExitError(ExitCommandError, ErrCodePipeline, err)
	}

	f, err := os.Open(dataPath)
	if err != nil {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("cannot open %s", dataPath), err.Error())
		return WrapExitError(ExitCommandError, ErrCodeNotFound, err)
	}
	defer f.Close()

	statements, err := ntriples.ReadAll(f)
	if err != nil {
		var syntaxErr *ntriples.SyntaxError
		if errors.As(err, &syntaxErr) {
			formatter.Error(ErrCodeSyntax, fmt.Sprintf("malformed statement in %s", dataPath), syntaxErr.Error())
			return WrapExitError(ExitFailure, ErrCodeSyntax, err)
		}
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("cannot read %s", dataPath), err.Error())
		return WrapExitError(ExitCommandError, ErrCodeNotFound, err)
	}
	formatter.VerboseLog("Read %d statement(s) from %s", len(statements), dataPath)

	// Populate the query: one solution per statement the pattern matches.
	// This is the single-pattern producer path; the solution modifiers do
	// the rest.
	var rows []query.Binding
	for _, st := range statements {
		if binding, ok := pattern.Match(st); ok {
			rows = append(rows, binding)
		}
	}
	q := query.New(
		query.WithPatterns(pattern),
		query.WithSolutions(rows...),
	)
	formatter.VerboseLog("Pattern matched %d solution(s)", q.Len())

	if err := pipeline.Apply(q); err != nil {
		formatter.Error(ErrCodePipeline, "pipeline failed", err.Error())
		return WrapExitError(ExitFailure, ErrCodePipeline, err)
	}

	return outputSolutions(formatter, dataPath, q)
}

func outputSolutions(formatter *OutputFormatter, dataPath string, q *query.Query) error {
	result := QueryResult{File: dataPath, Solutions: make([]map[string]string, 0, q.Len())}
	var lines []string
	for s := range q.Solutions() {
		row := make(map[string]string, s.Len())
		for _, name := range s.Vars() {
			t, _ := s.Get(name)
			row[name] = t.String()
		}
		result.Solutions = append(result.Solutions, row)
		lines = append(lines, s.String())
	}

	text := fmt.Sprintf("%d solution(s)", q.Len())
	if len(lines) > 0 {
		text += "\n" + strings.Join(lines, "\n")
	}
	return formatter.Success(result, text)
}
