// SPDX-License-Identifier: MIT

package sweep_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/sweep"
)

// ExampleRun sweeps a small square lattice over five temperatures.
func ExampleRun() {
	req := sweep.Request{Geometry: lattice.Square, L: 8, TMin: 1, TMax: 3, NT: 5, Trials: 200}
	res, err := sweep.Run(context.Background(), req, sweep.WithSeed(42))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, row := range res.Rows {
		fmt.Printf("T=%.1f |M| in [0,1]: %v\n", row.T, row.MeanAbsM >= 0 && row.MeanAbsM <= 1)
	}
	fmt.Println("cluster samples:", len(res.ClusterSizes))

	// Output:
	// T=1.0 |M| in [0,1]: true
	// T=1.5 |M| in [0,1]: true
	// T=2.0 |M| in [0,1]: true
	// T=2.5 |M| in [0,1]: true
	// T=3.0 |M| in [0,1]: true
	// cluster samples: 1000
}
