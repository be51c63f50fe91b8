// Package periodic implements the periodic FFT solver (spec.md §4.4): the
// simple sibling the AP planner uses as a leaf, and the base the AP
// executor's periodic nodes raise to successive powers.
package periodic

import (
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
)

// KernelBase is a single-step stencil's frequency-domain kernel over a
// periodic region of the given shape, built once and reused across frames.
type KernelBase struct {
	Shape    []int
	Spectrum []complex128
}

// BuildKernelImage deposits each offset's weight at its wrapped position
// in a real buffer of the given shape (row-major, axis 0 fastest), zero
// elsewhere: wrap(o)_i = o_i mod E_i, canonical non-negative residue.
func BuildKernelImage(offsets []grid.Coord, weights []float64, shape []int) []float64 {
	size := 1
	for _, e := range shape {
		size *= e
	}
	image := make([]float64, size)
	for i, o := range offsets {
		idx := linearWrapIndex(o, shape)
		image[idx] += weights[i]
	}
	return image
}

func linearWrapIndex(o grid.Coord, shape []int) int {
	idx := 0
	stride := 1
	for axis := range shape {
		m := ((o[axis] % shape[axis]) + shape[axis]) % shape[axis]
		idx += m * stride
		stride *= shape[axis]
	}
	return idx
}

// BuildKernelBase forward-transforms a fresh kernel image for offsets and
// weights over shape, producing the base spectrum periodic nodes raise to
// the k-th power once per apply.
func BuildKernelBase(wrapper *fftx.Wrapper, offsets []grid.Coord, weights []float64, shape []int) (*KernelBase, error) {
	image := BuildKernelImage(offsets, weights, shape)
	spectrum, err := wrapper.ForwardReal(image, shape)
	if err != nil {
		return nil, err
	}
	return &KernelBase{Shape: append([]int(nil), shape...), Spectrum: spectrum}, nil
}
