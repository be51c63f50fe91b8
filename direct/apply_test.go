package direct

import (
	"math"
	"testing"

	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/stencil"
)

func heat1D() stencil.TVStencil {
	k := 0.5
	return stencil.ConstStencil{S: stencil.Stencil{
		Offsets: []grid.Coord{{-1}, {0}, {1}},
		Weights: []float64{k, 1 - 2*k, k},
	}}
}

func TestBoxApplyConservesMassUnderConstantIC(t *testing.T) {
	w := grid.New([]int{0}, []int{99})
	in := domain.NewOwned(w)
	in.ParallelSet(2.0, 8)
	out := domain.NewOwned(w)

	bc := boundary.Constant(2.0)
	if err := BoxApply(bc, heat1D(), in, out, 5, 0, 4); err != nil {
		t.Fatalf("BoxApply: %v", err)
	}
	for i, v := range out.Buf {
		if math.Abs(v-2.0) > 1e-9 {
			t.Fatalf("out[%d] = %v, want 2.0 (constant field is a fixed point)", i, v)
		}
	}
}

func TestBoxApplyOneStepMatchesGenericAndSpecialized(t *testing.T) {
	w := grid.New([]int{0}, []int{9})
	in := domain.NewOwned(w)
	for i := range in.Buf {
		in.Buf[i] = float64(i)
	}
	bc := boundary.Constant(0.0)

	outSpecialized := domain.NewOwned(w)
	if err := BoxApply(bc, heat1D(), cloneDomain(in), outSpecialized, 1, 0, 3); err != nil {
		t.Fatalf("BoxApply: %v", err)
	}

	outGeneric := domain.NewOwned(w)
	if err := applyGenericStencil(bc, heat1D(), cloneDomain(in), outGeneric, 3); err != nil {
		t.Fatalf("generic apply: %v", err)
	}

	for i := range outSpecialized.Buf {
		if math.Abs(outSpecialized.Buf[i]-outGeneric.Buf[i]) > 1e-12 {
			t.Fatalf("specialized/generic mismatch at %d: %v vs %v", i, outSpecialized.Buf[i], outGeneric.Buf[i])
		}
	}
}

func cloneDomain(d *domain.OwnedDomain) *domain.OwnedDomain {
	out := domain.NewOwned(d.Window)
	copy(out.Buf, d.Buf)
	return out
}

// applyGenericStencil forces the generic gather path regardless of offset
// shape, used only to cross-check the 3-pt-1D/5-pt-2D fast paths.
func applyGenericStencil(bc boundary.Condition, s stencil.TVStencil, in, out *domain.OwnedDomain, chunkSize int) error {
	applyGeneric(bc, s.Offsets(), s.Weights(0), in, out, 0, chunkSize)
	return nil
}
