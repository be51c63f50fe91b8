package executor

import (
	"math"
	"testing"

	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/direct"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/plan"
	"github.com/tealab-go/nhls/stencil"
)

func heat1D() stencil.TVStencil {
	k := 0.2
	return stencil.ConstStencil{S: stencil.Stencil{
		Offsets: []grid.Coord{{-1}, {0}, {1}},
		Weights: []float64{k, 1 - 2*k, k},
	}}
}

// TestApplyMatchesDirectSolver checks the AP executor's output against a
// whole-domain naive direct apply with the same BC, the scenario-2/3 style
// comparison spec.md §8 calls for.
func TestApplyMatchesDirectSolver(t *testing.T) {
	root := grid.New([]int{0}, []int{199})
	bc := boundary.Constant(0.25)
	s := heat1D()
	const T = 40

	params := plan.Parameters{PlanType: fftx.Estimate, Cutoff: 8, Ratio: 0.5, ChunkSize: 16, Threads: 2}
	p, err := plan.Build(root, s, T, bc, params)
	if err != nil {
		t.Fatalf("plan.Build: %v", err)
	}

	in := domain.NewOwned(root)
	for i := range in.Buf {
		in.Buf[i] = math.Sin(float64(i) * 0.05)
	}
	out := domain.NewOwned(root)

	wrapper, err := fftx.NewWrapper(fftx.Estimate, "")
	if err != nil {
		t.Fatalf("NewWrapper: %v", err)
	}
	exec := New(p, wrapper)
	if err := exec.Apply(in, out, 0); err != nil {
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
		t.Fatalf("AP executor diverges from direct solver: max|diff| = %v", maxAbs)
	}
}

// TestApplyRejectsReentrantCall checks the sync/atomic re-entrancy guard
// returns an error rather than corrupting scratch.
func TestApplyRejectsReentrantCall(t *testing.T) {
	root := grid.New([]int{0}, []int{49})
	bc := boundary.Constant(0)
	s := heat1D()
	params := plan.Parameters{PlanType: fftx.Estimate, Cutoff: 8, Ratio: 0.5, ChunkSize: 8, Threads: 1}
	p, err := plan.Build(root, s, 10, bc, params)
	if err != nil {
		t.Fatalf("plan.Build: %v", err)
	}
	wrapper, err := fftx.NewWrapper(fftx.Estimate, "")
	if err != nil {
		t.Fatalf("NewWrapper: %v", err)
	}
	exec := New(p, wrapper)
	exec.busy = 1
	in := domain.NewOwned(root)
	out := domain.NewOwned(root)
	if err := exec.Apply(in, out, 0); err != ErrReentrant {
		t.Fatalf("expected ErrReentrant, got %v", err)
	}
}
