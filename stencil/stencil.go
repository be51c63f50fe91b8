// Package stencil defines the linear, fixed-offset operator S the solvers
// evolve: a set of integer offsets paired with scalar weights, plus the
// time-varying generalization used by the TV solvers.
package stencil

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tealab-go/nhls/grid"
)

// Stencil is a constant-weight linear operator: N integer offsets in Z^D
// each paired with a scalar weight.
type Stencil struct {
	Offsets []grid.Coord
	Weights []float64
}

// Validate checks the invariants spec.md §3 requires: distinct offsets,
// matching offset/weight counts, and at least one term.
func (s Stencil) Validate() error {
	if len(s.Offsets) == 0 {
		return errors.New("stencil: must have at least one offset")
	}
	if len(s.Offsets) != len(s.Weights) {
		return errors.Errorf("stencil: %d offsets but %d weights", len(s.Offsets), len(s.Weights))
	}
	dim := len(s.Offsets[0])
	seen := make(map[string]bool, len(s.Offsets))
	for _, o := range s.Offsets {
		if len(o) != dim {
			return errors.New("stencil: offsets must share one dimension")
		}
		key := fmt.Sprint([]int(o))
		if seen[key] {
			return errors.Errorf("stencil: duplicate offset %v", o)
		}
		seen[key] = true
	}
	return nil
}

// Dim returns the offset dimension.
func (s Stencil) Dim() int {
	if len(s.Offsets) == 0 {
		return 0
	}
	return len(s.Offsets[0])
}

// Slopes returns the componentwise max positive/negative offsets: the
// per-step influence radius spec.md §3 uses to size frustum shrinkage.
func (s Stencil) Slopes() grid.Slopes {
	dim := s.Dim()
	out := grid.Slopes{Lo: make([]int, dim), Hi: make([]int, dim)}
	for _, o := range s.Offsets {
		for axis, v := range o {
			if v < 0 && -v > out.Lo[axis] {
				out.Lo[axis] = -v
			}
			if v > 0 && v > out.Hi[axis] {
				out.Hi[axis] = v
			}
		}
	}
	return out
}

// TVStencil is a stencil whose weights are a pure function of global time.
// ConstStencil implements it for constant stencils; RotatingAdvection
// implements it for the §8 scenario-6 time-varying rotating kernel.
type TVStencil interface {
	Dim() int
	Offsets() []grid.Coord
	Weights(t int) []float64
	Slopes() grid.Slopes
}

// ConstStencil adapts a constant Stencil to the TVStencil interface.
type ConstStencil struct {
	S Stencil
}

func (c ConstStencil) Dim() int             { return c.S.Dim() }
func (c ConstStencil) Offsets() []grid.Coord { return c.S.Offsets }
func (c ConstStencil) Slopes() grid.Slopes  { return c.S.Slopes() }
func (c ConstStencil) Weights(t int) []float64 {
	return c.S.Weights
}
