package tv

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/stencil"
)

func rotatingStencil() stencil.RotatingAdvection {
	return stencil.RotatingAdvection{Freq: 20, Central: 0.4}
}

// TestTreeCombinesPairwise checks K([a,c)) = K([a,b)) · K([b,c)) pointwise
// for a < b < c, spec.md §8's TV tree combine invariant.
func TestTreeCombinesPairwise(t *testing.T) {
	wrapper, err := fftx.NewWrapper(fftx.Estimate, "")
	if err != nil {
		t.Fatalf("NewWrapper: %v", err)
	}
	s := rotatingStencil()
	shape := []int{8, 8}

	const T0, steps = 0, 20
	tree, err := Rebuild(wrapper, T0, steps, shape, s.Offsets(), s.Weights, 0)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	a, b, c := 2, 9, 17
	kac := tree.Lookup(a, c, 0)
	kab := tree.Lookup(a, b, 0)
	kbc := tree.Lookup(b, c, 0)

	combined := make([]complex128, len(kac))
	copy(combined, kab)
	for i := range combined {
		combined[i] *= kbc[i]
	}

	var maxAbs float64
	for i := range kac {
		d := cmplx.Abs(kac[i] - combined[i])
		if d > maxAbs {
			maxAbs = d
		}
	}
	if maxAbs > 1e-9 {
		t.Fatalf("K([a,c)) != K([a,b))*K([b,c)): max|diff| = %v", maxAbs)
	}
}

func TestTreeSingleStepMatchesDirectKernel(t *testing.T) {
	wrapper, err := fftx.NewWrapper(fftx.Estimate, "")
	if err != nil {
		t.Fatalf("NewWrapper: %v", err)
	}
	s := rotatingStencil()
	shape := []int{4, 4}

	tree, err := Rebuild(wrapper, 0, 5, shape, s.Offsets(), s.Weights, 0)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	for i := 0; i < 5; i++ {
		got := tree.Lookup(i, i+1, 0)
		want := tree.Nodes[tree.Base+i]
		if len(got) != len(want) {
			t.Fatalf("leaf lookup length mismatch at step %d", i)
		}
		for j := range got {
			if math.Abs(real(got[j])-real(want[j])) > 1e-9 {
				t.Fatalf("leaf lookup mismatch at step %d index %d", i, j)
			}
		}
	}
}
