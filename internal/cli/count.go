package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsyren/rdf/ntriples"
)

// CountResult holds the count command's output.
type CountResult struct {
	File       string `json:"file"`
	Statements int    `json:"statements"`
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <file.nt>",
		Short: "Count the statements in an N-Triples file",
		Long: `Read an N-Triples file through the statement iterator and report how
many statements it contains. Blank lines and comments are skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCount(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	f, err := os.Open(path)
	if err != nil {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("cannot open %s", path), err.Error())
		return WrapExitError(ExitCommandError, ErrCodeNotFound, err)
	}
	defer f.Close()

	n, err := ntriples.Count(f)
	if err != nil {
		var syntaxErr *ntriples.SyntaxError
		if errors.As(err, &syntaxErr) {
			formatter.Error(ErrCodeSyntax, fmt.Sprintf("malformed statement in %s", path), syntaxErr.Error())
			return WrapExitError(ExitFailure, ErrCodeSyntax, err)
		}
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("cannot read %s", path), err.Error())
		return WrapExitError(ExitCommandError, ErrCodeNotFound, err)
	}

	formatter.VerboseLog("Read %s", path)
	return formatter.Success(
		CountResult{File: path, Statements: n},
		fmt.Sprintf("%d statements", n),
	)
}
