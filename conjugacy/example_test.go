package conjugacy_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/crnconj/conjugacy"
	"github.com/katalvlaran/crnconj/crn"
)

// ExampleFinder_Find looks for a weakly reversible conjugate of the chain
// X1 + 2X2 → 2X1 + X2 → 3X2.
func ExampleFinder_Find() {
	net, _ := crn.FromRows(
		[][]float64{{1, 2, 0}, {2, 1, 3}},
		[][]float64{{-1, 0, 0}, {1, -1, 0}, {0, 1, 0}},
	)
	f, _ := conjugacy.NewFinder()
	sol, err := f.Find(context.Background(), net, conjugacy.DefaultParams())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("state:", sol.State)
	fmt.Println("active transitions:", sol.ActiveTransitions)
	// Output:
	// state: Extracted
	// active transitions: 2
}

// ExampleBuild shows the size of the model for two species and three complexes.
func ExampleBuild() {
	net, _ := crn.FromRows(
		[][]float64{{1, 2, 0}, {2, 1, 3}},
		[][]float64{{-1, 0, 0}, {1, -1, 0}, {0, 1, 0}},
	)
	f, _ := conjugacy.Build(net, conjugacy.DefaultParams())
	c := f.Counts()
	fmt.Println(f.Model().NumVars(), "variables")
	fmt.Println(c[conjugacy.GroupEquivalence], c[conjugacy.GroupBalance], c[conjugacy.GroupActivation], c[conjugacy.GroupDiagonal])
	// Output:
	// 26 variables
	// 6 9 36 6
}
