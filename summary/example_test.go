package summary_test

import (
	"fmt"

	"github.com/katalvlaran/lvmode/mode"
	"github.com/katalvlaran/lvmode/models"
	"github.com/katalvlaran/lvmode/summary"
)

// ExampleCoefficientTable fits the mean of four observations with known
// sigma = 2, so the standard error is exactly 2/√4 = 1.
func ExampleCoefficientTable() {
	m := &models.NormalMean{Data: []float64{1, 2, 3, 4}, Sigma: 2}
	res, err := mode.Estimate(m, mode.MLE)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	tab, err := summary.CoefficientTable(res, summary.DefaultLevel)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range tab.Rows {
		fmt.Printf("%s %.4f %.4f [%.4f, %.4f]\n", r.Name, r.Estimate, r.StdErr, r.Lower, r.Upper)
	}
	// Output: mu 2.5000 1.0000 [0.5400, 4.4600]
}
