package linkage_test

import (
	"fmt"

	"github.com/katalvlaran/crnconj/linkage"
	"github.com/katalvlaran/crnconj/matrix"
)

// ExampleAnalyze reports the structure of the chain C1 → C2 → C3.
func ExampleAnalyze() {
	ak, _ := matrix.FromRows([][]float64{{-1, 0, 0}, {1, -1, 0}, {0, 1, 0}})
	y, _ := matrix.FromRows([][]float64{{1, 2, 0}, {2, 1, 3}})

	g, _ := linkage.FromKinetic(ak)
	rep, _ := linkage.Analyze(g, y)
	fmt.Println("classes:", rep.Classes)
	fmt.Println("weakly reversible:", rep.WeaklyReversible)
	fmt.Println("deficiency:", rep.Deficiency)
	// Output:
	// classes: [[0 1 2]]
	// weakly reversible: false
	// deficiency: 1
}
