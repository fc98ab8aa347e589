package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/crnconj/conjugacy"
	"github.com/katalvlaran/crnconj/crn"
	"github.com/katalvlaran/crnconj/linkage"
	"github.com/katalvlaran/crnconj/matrix"
)

// printMatrix writes "name =" followed by the matrix in aligned columns.
func printMatrix(w io.Writer, name string, m *matrix.Dense) {
	fmt.Fprintf(w, "%s =\n", name)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range m.ToRows() {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%.6g", v)
		}
		fmt.Fprintf(tw, "  %s\t\n", strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func printInput(w io.Writer, net *crn.Network) {
	fmt.Fprintf(w, "species:   %s\n", strings.Join(net.Species(), ", "))
	fmt.Fprintf(w, "complexes: %s\n", strings.Join(net.Complexes(), ", "))
	printMatrix(w, "Y", net.ComplexMatrix())
	printMatrix(w, "M", net.FluxMatrix())
	printMatrix(w, "Ak", net.KineticMatrix())
}

func printStructure(w io.Writer, label string, r *linkage.Report) {
	fmt.Fprintf(w, "%s: %d reactions, %d linkage classes, rank %d, deficiency %d, weakly reversible %t\n",
		label, r.Reactions, len(r.Classes), r.Rank, r.Deficiency, r.WeaklyReversible)
}

// printSolution follows the input dump with A and T, or the noSolution line.
func printSolution(w io.Writer, sol *conjugacy.Solution, rep *conjugacy.Report) {
	if sol == nil || sol.State != conjugacy.Extracted {
		fmt.Fprintln(w, noSolution(sol, nil))
		return
	}
	fmt.Fprintf(w, "active transitions: %d\n", sol.ActiveTransitions)
	printMatrix(w, "A", sol.Conjugate)
	printMatrix(w, "T", sol.Scaling)
	if rep == nil {
		return
	}
	printStructure(w, "input", rep.Input)
	printStructure(w, "conjugate", rep.Conjugate)
	for _, r := range rep.Reactions {
		fmt.Fprintf(w, "  %s\n", r)
	}
}

// noSolution is the line printed instead of A and T. Infeasible keeps the
// plain message; any other outcome names its state and reason so a solver
// failure never reads like infeasibility.
func noSolution(sol *conjugacy.Solution, err error) string {
	const msg = "No solution found"
	switch {
	case sol == nil && err == nil, sol != nil && sol.State == conjugacy.Infeasible:
		return msg
	case sol == nil:
		return fmt.Sprintf("%s (%v)", msg, err)
	case sol.State == conjugacy.Extracted && err != nil:
		return fmt.Sprintf("%s (%s: %v)", msg, sol.State, err)
	case sol.Reason != "":
		return fmt.Sprintf("%s (%s: %s)", msg, sol.State, sol.Reason)
	default:
		return fmt.Sprintf("%s (%s)", msg, sol.State)
	}
}
