package calib_test

import (
	"fmt"

	"github.com/cwbudde/algo-gamma/gamma/calib"
)

func ExampleDerive() {
	t, err := calib.Derive([]float64{100, 500}, []float64{511, 1274.5})
	if err != nil {
		panic(err)
	}
	fmt.Printf("scale=%.5f offset=%.3f\n", t.Scale, t.Offset)
	fmt.Printf("%.2f keV\n", t.Energy(300))
	// Output:
	// scale=1.90875 offset=-320.125
	// 892.75 keV
}
