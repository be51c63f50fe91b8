// Package tv implements the time-varying kernel tree and TV-AP executor
// variant (spec.md §4.7): a segment tree over per-step frequency kernels,
// and an executor that looks a raised kernel up in the tree instead of
// exponentiating one constant base. Deliberately a parallel, partially
// duplicated sibling of the executor package rather than a shared generic
// abstraction, mirroring the teacher's own src/src-sol1/src-sol2 pattern of
// independently evolved solver variants rather than one over-parameterized
// implementation.
package tv

import (
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/internal/mathutil"
	"github.com/tealab-go/nhls/internal/parallelx"
	"github.com/tealab-go/nhls/periodic"
)

// Tree is a flat array-backed segment tree over [t0, t0+T): leaves at
// [Base, Base+T) hold each single step's frequency kernel, internal nodes
// hold the pointwise product of their children (spec.md §4.7). T need not
// be a power of two; the tail leaves [Base+T, 2*Base) are padded with the
// identity kernel (DFT of a unit impulse at the origin, the constant-1
// spectrum).
type Tree struct {
	T0    int
	T     int
	Shape []int
	Base  int
	Nodes [][]complex128
}

// Rebuild constructs a fresh Tree covering [t0, t0+steps) for the given
// stencil offsets and per-step weight function, over a periodic region of
// the given shape. Cost: O(steps) forward FFTs plus O(steps·log(steps))
// pointwise multiplies, per spec.md §4.7.
func Rebuild(wrapper *fftx.Wrapper, t0, steps int, shape []int, offsets []grid.Coord, weightsAt func(t int) []float64, chunkSize int) (*Tree, error) {
	base := mathutil.NextPow2(steps)
	nodes := make([][]complex128, 2*base)

	size := 1
	for _, e := range shape {
		size *= e
	}

	for i := 0; i < steps; i++ {
		w := weightsAt(t0 + i)
		img := periodic.BuildKernelImage(offsets, w, shape)
		spec, err := wrapper.ForwardReal(img, shape)
		if err != nil {
			return nil, err
		}
		nodes[base+i] = spec
	}
	for i := steps; i < base; i++ {
		nodes[base+i] = identitySpectrum(size)
	}

	for i := base - 1; i >= 1; i-- {
		left, right := nodes[2*i], nodes[2*i+1]
		combined := append([]complex128(nil), left...)
		parallelx.Multiply(combined, right, chunkSize)
		nodes[i] = combined
	}

	return &Tree{T0: t0, T: steps, Shape: append([]int(nil), shape...), Base: base, Nodes: nodes}, nil
}

// identitySpectrum is the DFT of a unit impulse at the origin: constant 1
// at every frequency, the multiplicative identity the tree's padding leaves
// hold. Lookup does not use it: an empty range panics.
func identitySpectrum(size int) []complex128 {
	out := make([]complex128, size)
	for i := range out {
		out[i] = 1
	}
	return out
}

// Lookup returns the pointwise-combined kernel for the half-open interval
// [t0+a, t0+b) via the standard iterative segment-tree decomposition into
// O(log T) node kernels (spec.md §4.7).
func (t *Tree) Lookup(a, b int, chunkSize int) []complex128 {
	if a < 0 || b > t.T || a >= b {
		panic("tv: Lookup range outside tree coverage")
	}
	l, r := a+t.Base, b+t.Base
	var result []complex128
	for l < r {
		if l&1 == 1 {
			result = combine(result, t.Nodes[l], chunkSize)
			l++
		}
		if r&1 == 1 {
			r--
			result = combine(result, t.Nodes[r], chunkSize)
		}
		l >>= 1
		r >>= 1
	}
	return result
}

func combine(acc, next []complex128, chunkSize int) []complex128 {
	if acc == nil {
		return append([]complex128(nil), next...)
	}
	out := append([]complex128(nil), acc...)
	parallelx.Multiply(out, next, chunkSize)
	return out
}
