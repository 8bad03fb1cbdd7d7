// Package report renders detected conflicts as human-readable text,
// grounded on original_source/src/main.cc's print_help/output_actions/
// report_sr_conflict/report_rr_conflict/report_conflict/report_conflicts
// (project mpetx/lr1cc).
package report

import (
	"fmt"
	"io"
	"sort"

	"lr1cc/internal/conflict"
	"lr1cc/internal/dfa"
	"lr1cc/internal/symbol"
)

// Conflicts writes a summary banner followed by one block per conflict
// to out.
func Conflicts(conflicts []conflict.Conflict, out io.Writer) {
	noun := "conflicts"
	if len(conflicts) == 1 {
		noun = "conflict"
	}
	fmt.Fprintf(out, "%d %s detected.\n", len(conflicts), noun)

	for _, c := range conflicts {
		reportOne(c, out)
	}
}

func reportOne(c conflict.Conflict, out io.Writer) {
	if c.FirstState == c.SecondState {
		reportReduceReduce(c, out)
	} else {
		reportShiftReduce(c, out)
	}
}

func reportReduceReduce(c conflict.Conflict, out io.Writer) {
	writeConflictPoint(c.StartToFirst, "[1]", out)
	fmt.Fprintln(out)

	fmt.Fprint(out, "[1]:")
	writeActions(c.FirstState, out)

	fmt.Fprint(out, "\n\n")
}

func reportShiftReduce(c conflict.Conflict, out io.Writer) {
	writeConflictPoint(c.StartToFirst, "[1]", out)
	fmt.Fprint(out, " ")
	writeConflictPoint(c.FirstToSecond, "[2]", out)
	fmt.Fprintln(out)

	fmt.Fprint(out, "[1]:")
	writeActions(c.FirstState, out)

	fmt.Fprint(out, "\n[2]:")
	writeActions(c.SecondState, out)

	fmt.Fprint(out, "\n\n")
}

func writeConflictPoint(path []*symbol.Symbol, point string, out io.Writer) {
	for i := 0; i < len(path)-1; i++ {
		fmt.Fprintf(out, "%s ", path[i].Name())
	}

	fmt.Fprintf(out, "%s ", point)

	if len(path) > 0 {
		fmt.Fprint(out, path[len(path)-1].Name())
	}
}

func writeActions(state *dfa.State, out io.Writer) {
	if state.Accepts {
		fmt.Fprint(out, " *ACCEPT*")
	}

	names := make([]string, 0, len(state.Reductions))
	for p := range state.Reductions {
		names = append(names, p.Name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, " %s", name)
	}
}
