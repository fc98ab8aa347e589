// Package bnb is a pure-Go branch-and-bound MILP solver built on the dense
// simplex of gonum.org/v1/gonum/optimize/convex/lp.
//
// Each node relaxation is rewritten into standard form (min cᵀy, Ay = b, y ≥ 0):
//
//   - fixed variables (lo == hi) are substituted as constants;
//   - lower-bounded variables are shifted, x = lo + y, with a slack row for a finite hi;
//   - upper-bounded-only variables are reflected, x = hi − y;
//   - free variables are split, x = y⁺ − y⁻.
//
// Equality rows are then reduced to an independent subset (inconsistent rows
// prove infeasibility), empty rows and columns are resolved analytically, and
// the rest is scaled to unit row norms and solved in two phases with
// lp.Simplex: phase 1 from an explicit artificial basis, phase 2 from the
// basis phase 1 ends on. A breakdown rebuilds the basis from the last
// iterate, then retries with the columns reversed; an unbounded phase 2 is
// only reported once a descent ray is found.
//
// Search is depth-first with most-fractional branching by bound tightening.
// Nodes are pruned against the incumbent; when every objective coefficient
// sits on an integer variable with an integral value, the bound is rounded up
// before comparing.
//
// Options:
//
//   - WithTolerance(tol)             feasibility and pruning tolerance (default 1e-9).
//   - WithIntegralityTolerance(tol)  distance from an integer that counts as integral (default 1e-6).
//   - WithNodeLimit(n)               maximum explored nodes (default 200000, 0 = unlimited).
//   - WithTimeLimit(d)               wall-clock limit (default none).
//   - WithLogger(l)                  logrus.FieldLogger for progress (default discards).
//
// Stopping early (limits or context cancellation) yields milp.Error with the
// reason in Result.Reason; the incumbent, if any, is still returned in Values.
package bnb
