package tv

import (
	"math"
	"testing"

	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/direct"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/plan"
)

// TestTVApplyMatchesTVDirect is a small-scale rendition of spec.md §8
// scenario 6: TV-AP output must match a whole-domain TV-direct apply
// within tolerance.
func TestTVApplyMatchesTVDirect(t *testing.T) {
	root := grid.New([]int{0, 0}, []int{39, 39})
	bc := boundary.Constant(0)
	s := rotatingStencil()
	const T = 40

	params := plan.Parameters{PlanType: fftx.Estimate, Cutoff: 8, Ratio: 0.5, ChunkSize: 16, Threads: 2}
	p, err := plan.Build(root, s, T, bc, params)
	if err != nil {
		t.Fatalf("plan.Build: %v", err)
	}

	in := domain.NewOwned(root)
	idx := 0
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			in.Buf[idx] = math.Sin(float64(x)*0.1) * math.Cos(float64(y)*0.1)
			idx++
		}
	}
	out := domain.NewOwned(root)

	wrapper, err := fftx.NewWrapper(fftx.Estimate, "")
	if err != nil {
		t.Fatalf("NewWrapper: %v", err)
	}
	solver := NewAPSolver(p, wrapper)
	if err := solver.Apply(in, out, 0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	directIn := domain.NewOwned(root)
	copy(directIn.Buf, in.Buf)
	directOut := domain.NewOwned(root)
	if err := direct.BoxApply(bc, s, directIn, directOut, T, 0, 16); err != nil {
		t.Fatalf("direct.BoxApply: %v", err)
	}

	var maxAbs float64
	for i := range out.Buf {
		d := math.Abs(out.Buf[i] - directOut.Buf[i])
		if d > maxAbs {
			maxAbs = d
		}
	}
	if maxAbs > 1e-6 {
		t.Fatalf("TV-AP diverges from TV-direct: max|diff| = %v", maxAbs)
	}
}
