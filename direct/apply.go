// Package direct implements the naive per-cell stencil applier: the
// recursion's base case, and the only place that ever touches a
// BoundaryCondition directly.
package direct

import (
	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/internal/parallelx"
	"github.com/tealab-go/nhls/stencil"
)

// Gather fills dst with the stencil's neighbor values at c: in-domain
// neighbors read the buffer directly, out-of-domain neighbors consult bc,
// and a None from bc falls back to a periodic wrap of the domain's
// exclusive bounds (spec.md §4.1). len(dst) must equal len(offsets).
func Gather(d *domain.OwnedDomain, bc boundary.Condition, offsets []grid.Coord, globalTime int, c grid.Coord, dst []float64) {
	for i, o := range offsets {
		n := c.Add(o)
		if d.Window.Contains(n) {
			dst[i] = d.At(n)
			continue
		}
		if v, ok := bc.Check(n, globalTime); ok {
			dst[i] = v
			continue
		}
		dst[i] = d.At(wrapCoord(n, d.Window))
	}
}

func wrapCoord(c grid.Coord, w grid.AABB) grid.Coord {
	e := w.ExclusiveBounds()
	out := make(grid.Coord, len(c))
	for i := range c {
		m := ((c[i]-w.Lo[i])%e[i] + e[i]) % e[i]
		out[i] = w.Lo[i] + m
	}
	return out
}

// Applier is the generic stencil-apply interface the AP planner's boundary
// and leaf nodes hold, so the executor can slot in either the generic
// gather path or a specialized fast path without caring which.
type Applier interface {
	Apply(bc boundary.Condition, s stencil.TVStencil, in, out *domain.OwnedDomain, kSteps, globalTime, chunkSize int) error
}

// Generic applies the stencil via Gather + weighted sum, supporting any
// dimension and any offset set.
type Generic struct{}

func (Generic) Apply(bc boundary.Condition, s stencil.TVStencil, in, out *domain.OwnedDomain, kSteps, globalTime, chunkSize int) error {
	return BoxApply(bc, s, in, out, kSteps, globalTime, chunkSize)
}

// BoxApply applies s for kSteps steps, ping-ponging in/out internally.
// Output holds the result on return; input's contents are undefined
// (used as scratch), matching spec.md §4.2's contract exactly.
func BoxApply(bc boundary.Condition, s stencil.TVStencil, in, out *domain.OwnedDomain, kSteps, globalTime, chunkSize int) error {
	if in.Window.Dim() != out.Window.Dim() || len(in.Buf) != len(out.Buf) {
		panic("direct: BoxApply in/out dimension mismatch")
	}

	bufs := [2]*domain.OwnedDomain{in, out}
	cur := 0
	for step := 0; step < kSteps; step++ {
		src, dst := bufs[cur], bufs[1-cur]
		applyOneStep(bc, s, src, dst, globalTime+step, chunkSize)
		cur = 1 - cur
	}
	if bufs[cur] != out {
		copy(out.Buf, bufs[cur].Buf)
	}
	return nil
}

func applyOneStep(bc boundary.Condition, s stencil.TVStencil, src, dst *domain.OwnedDomain, t, chunkSize int) {
	offsets := s.Offsets()
	weights := s.Weights(t)
	window := src.Window
	dim := window.Dim()

	switch {
	case dim == 1 && is3pt1D(offsets):
		apply3pt1D(bc, offsets, weights, src, dst, t, chunkSize)
	case dim == 2 && is5pt2D(offsets):
		apply5pt2D(bc, offsets, weights, src, dst, t, chunkSize)
	default:
		applyGeneric(bc, offsets, weights, src, dst, t, chunkSize)
	}
}

func applyGeneric(bc boundary.Condition, offsets []grid.Coord, weights []float64, src, dst *domain.OwnedDomain, t, chunkSize int) {
	window := src.Window
	n := len(dst.Buf)
	parallelx.Execute(n, chunkSize, func(start, end int) {
		neighbors := make([]float64, len(offsets))
		for idx := start; idx < end; idx++ {
			c := window.Coord(int64(idx))
			Gather(src, bc, offsets, t, c, neighbors)
			var sum float64
			for i, w := range weights {
				sum += w * neighbors[i]
			}
			dst.Buf[idx] = sum
		}
	})
}
