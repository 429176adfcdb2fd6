package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvmode/matrix"
)

// ExampleInverse inverts a 2×2 curvature matrix and reads its diagonal,
// the building block of asymptotic standard errors.
func ExampleInverse() {
	info, _ := matrix.NewDenseFrom(2, 2, []float64{
		4, 0,
		0, 25,
	})
	cov, err := matrix.Inverse(info)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	d, _ := matrix.Diag(cov)
	fmt.Printf("%.4f %.4f\n", d[0], d[1])
	// Output: 0.2500 0.0400
}
