// Package boundary defines the BoundaryCondition contract the gather layer
// consults whenever a stencil's offset reaches outside the current domain
// window.
package boundary

import "github.com/tealab-go/nhls/grid"

// Condition is a pure, thread-safe function from (coord, global_time) to
// an optional constant value. Some(v) means coord is outside the valid
// interior and contributes the constant v; None means "treat coord as
// periodic wrap of the domain" (spec.md §4.1). Implementations must be
// stateless and safe for concurrent calls from many goroutines.
type Condition interface {
	Check(c grid.Coord, globalTime int) (v float64, ok bool)
}

// Constant returns the same value v for every out-of-domain coordinate:
// the zero-constant / constant-1 BC used by scenarios 2 and 3.
type Constant float64

func (c Constant) Check(grid.Coord, int) (float64, bool) {
	return float64(c), true
}

// Periodic always answers None, signalling the gather layer to wrap the
// coordinate modulo the domain's exclusive bounds instead of substituting
// a constant.
type Periodic struct{}

func (Periodic) Check(grid.Coord, int) (float64, bool) {
	return 0, false
}

// Func adapts a plain function to Condition.
type Func func(c grid.Coord, globalTime int) (float64, bool)

func (f Func) Check(c grid.Coord, globalTime int) (float64, bool) {
	return f(c, globalTime)
}
