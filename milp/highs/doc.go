// Package highs adapts the HiGHS solver, through the cgo bindings of
// github.com/lanl/highs, to the milp.Solver interface.
//
// The adapter is compiled only with the "highs" build tag because it needs a
// HiGHS installation visible to cgo:
//
//	go build -tags highs ./...
//
// Without the tag the package is empty and callers fall back to milp/bnb.
package highs
