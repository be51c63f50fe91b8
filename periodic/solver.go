package periodic

import (
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/internal/parallelx"
)

// SolveWithBase drives one periodic-FFT apply of kSteps repetitions of the
// stencil base represents, per spec.md §4.4: forward-transform the input,
// raise the cached base spectrum to the k-th power, multiply pointwise,
// inverse-transform and rescale by 1/prod(shape). base is never mutated, so
// the same KernelBase is reusable across frames and across the many
// periodic leaves of a single AP plan.
func SolveWithBase(wrapper *fftx.Wrapper, base *KernelBase, inBuf []float64, kSteps int, chunkSize int) ([]float64, error) {
	uhat, err := wrapper.ForwardReal(inBuf, base.Shape)
	if err != nil {
		return nil, err
	}

	khat := append([]complex128(nil), base.Spectrum...)
	tmp := make([]complex128, len(khat))
	parallelx.Power(kSteps, khat, tmp, chunkSize)

	parallelx.Multiply(uhat, khat, chunkSize)

	out, err := wrapper.InverseComplex(uhat, base.Shape)
	if err != nil {
		return nil, err
	}

	scale := 1.0
	for _, e := range base.Shape {
		scale *= float64(e)
	}
	scale = 1.0 / scale
	for i := range out {
		out[i] *= scale
	}
	return out, nil
}

// Solve builds a fresh kernel base for offsets/weights and applies it
// kSteps times in one periodic-FFT pass. Callers that repeat the same
// stencil over many frames (the AP executor's periodic nodes) should build
// the KernelBase once with BuildKernelBase and call SolveWithBase directly
// instead, to amortize the forward transform of the kernel image.
func Solve(wrapper *fftx.Wrapper, offsets []grid.Coord, weights []float64, shape []int, kSteps int, inBuf []float64, chunkSize int) ([]float64, error) {
	base, err := BuildKernelBase(wrapper, offsets, weights, shape)
	if err != nil {
		return nil, err
	}
	return SolveWithBase(wrapper, base, inBuf, kSteps, chunkSize)
}
