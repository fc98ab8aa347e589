// Package milp defines a small mixed-integer linear programming model and the
// one-method Solver interface that back-ends implement.
//
// A Model holds named variables (continuous, binary or integer, each with
// bounds), linear constraints tagged with a group name, and a linear
// objective with a direction. Constraints are stored in emission order, so a
// deterministic builder yields a byte-for-byte identical model.
//
// Solving is delegated:
//
//	s, err := bnb.New() // pure Go branch-and-bound
//	res, err := s.Solve(ctx, model)
//	switch res.Status {
//	case milp.Optimal:    // res.Values holds one value per variable
//	case milp.Infeasible: // normal outcome
//	}
//
// Model.Check re-substitutes a value vector and reports the first violated
// bound, integrality requirement or row; back-end tests use it as an oracle.
package milp
