// Package crnconj finds weakly reversible linearly conjugate chemical reaction
// networks with the fewest active transitions.
//
// What it does
//
//	Given a network by its complex matrix Y and kinetic matrix Ak, decide
//	whether a positive diagonal scaling T and a kinetic matrix A exist with
//	Y·A = T·Y·Ak, such that A describes a weakly reversible network. Among all
//	such A, pick one with the minimum number of reactions. The decision is a
//	mixed-integer linear program; dynamics are never simulated.
//
// Layout
//
//	matrix/      dense row-major matrices, products, rank (gonum SVD)
//	crn/         the immutable network: Y, Ak and the flux M = Y·Ak
//	reaction/    parser for reaction strings such as "X1 + 2 X2 ->(1.5) X1"
//	linkage/     reaction graph, linkage classes, strong components, deficiency
//	milp/        model, status and the one-method Solver interface
//	milp/bnb/    pure Go branch-and-bound over gonum's simplex
//	milp/highs/  HiGHS back-end (cgo, build tag "highs")
//	conjugacy/   formulation builder, extraction, verification, sweeps
//	config/      YAML run files
//	cmd/weakrev  command line front-end
//
// Quick start
//
//	net, _ := reaction.FromStrings("X1 + 2 X2 -> 2 X1 + X2", "2 X1 + X2 -> 3 X2")
//	f, _ := conjugacy.NewFinder()
//	sol, err := f.Find(ctx, net, conjugacy.DefaultParams())
//	if err == nil && sol.State == conjugacy.Extracted {
//		fmt.Print(sol.Conjugate, sol.Scaling)
//	}
package crnconj
