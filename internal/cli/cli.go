// Package cli wires the lr1cc command line and orchestrates the full
// table-generation pipeline: parse, analyze, build NFA, build DFA,
// detect conflicts, then either report conflicts or emit the table.
// Command-line shape (an -o/--output flag, a required input-file
// argument, and -h/--help) is grounded on original_source/cli.hh and
// original_source/cli.cc; the cobra/pflag wiring itself follows the
// pack's other CLI-fronted tools (nihei9-vartan, theakshaypant-regret,
// mdhender-guanabana, dhamidi-sai all declare spf13/cobra in go.mod).
package cli

import (
	"fmt"
	"io"
	"os"

	"lr1cc/internal/conflict"
	"lr1cc/internal/dfa"
	"lr1cc/internal/gsyntax"
	"lr1cc/internal/nfa"
	"lr1cc/internal/report"
	"lr1cc/internal/table"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the lr1cc root command. stdout/stderr are
// injectable so tests can capture output without touching os.Stdout.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:           "lr1cc [-o outfile] infile",
		Short:         "Generate a canonical LR(1) action/goto table from a grammar description",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			if outputFile == "" {
				outputFile = inputFile + ".csv"
			}
			return Run(inputFile, outputFile, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default infile.csv)")

	return cmd
}

// Run executes the pipeline against inputFile, writing the table to
// outputFile, or writing a conflict report to stderr and returning a
// non-nil error if the DFA has any LR(1) conflict.
func Run(inputFile, outputFile string, stderr io.Writer) error {
	in, err := os.Open(inputFile)
	if err != nil {
		return errors.Wrapf(err, "error: failed to open `%s'", inputFile)
	}
	defer in.Close()

	g, catalog, err := gsyntax.Parse(in)
	if err != nil {
		return err
	}

	g.Calculate()
	if err := g.EnsureSanity(); err != nil {
		return err
	}

	builtNFA := nfa.Build(g)
	builtDFA := dfa.Build(builtNFA)

	conflicts := conflict.Detect(builtDFA)
	if len(conflicts) > 0 {
		report.Conflicts(conflicts, stderr)
		return errors.Errorf("%d conflict(s) detected", len(conflicts))
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return errors.Wrapf(err, "error: failed to open `%s'", outputFile)
	}
	defer out.Close()

	columns := table.Columns(catalog)

	return table.Emit(builtDFA, columns, out)
}

// Main is the process entry point invoked from cmd/lr1cc.
func Main() int {
	cmd := NewRootCommand(os.Stdout, os.Stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
