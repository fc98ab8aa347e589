// Package conjugacy decides whether a chemical reaction network admits a
// weakly reversible linearly conjugate network, and extracts one with the
// fewest active transitions.
//
// Two networks with the same complex matrix Y are linearly conjugate when a
// positive diagonal scaling T maps the flux of one onto the other:
//
//	Y·A = T·Y·Ak
//
// Build turns a crn.Network and a Params{Eps, UBound} pair into a milp.Model
// over the variables
//
//	T[i]      scaling of species i, in [Eps, UBound]
//	A[i,j]    conjugate kinetic matrix, free
//	Ah[i,j]   weak-reversibility witness on the same support as A, free
//	δ[i,j]    binary, 1 when the transition C(j) → C(i) is active (i ≠ j)
//
// and the row groups
//
//	equivalence  n·m      Σ_k Y[i,k]·A[k,j] − M[i,j]·T[i] = 0
//	balance      3m       column sums of A; column and row sums of Ah
//	activation   6m(m−1)  x ∈ {0} ∪ [Eps, UBound] gated by δ, x ∈ {A[i,j], Ah[i,j]}
//	diagonal     2m       A[j,j] ≤ 0, Ah[j,j] ≤ 0
//
// with objective maximize −Σδ. Because Ah shares its support with A and has
// zero row and column sums, every feasible point is weakly reversible.
//
// A Finder runs the pipeline Build → Solve → Extract against a milp.Solver
// (milp/bnb by default):
//
//	f, _ := conjugacy.NewFinder(conjugacy.WithLogger(log))
//	sol, err := f.Find(ctx, net, conjugacy.DefaultParams())
//	switch {
//	case err != nil:                           // invalid input, unbounded or solver failure
//	case sol.State == conjugacy.Infeasible:   // no conjugate network in the interval
//	default:                                   // sol.Conjugate, sol.Scaling
//	}
//
// Infeasibility is a regular outcome, not an error. Parameters are never
// relaxed automatically; Sweep solves several intervals concurrently.
package conjugacy
