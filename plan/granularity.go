package plan

import (
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/internal/mathutil"
	"github.com/tealab-go/nhls/stencil"
)

// minExtent returns min(E) over box's exclusive bounds, the sizing anchor
// spec.md §4.5 steps 1-3 use throughout.
func minExtent(box grid.AABB) int {
	e := box.ExclusiveBounds()
	m := e[0]
	for _, v := range e[1:] {
		m = mathutil.MinInt(m, v)
	}
	return m
}

// sigma is the stencil's overall influence radius: max|offset| across every
// axis and every term, spec.md §4.5's "sigma(S) = max|offset|".
func sigma(s stencil.TVStencil) int {
	sl := s.Slopes()
	m := 0
	for _, v := range sl.Lo {
		m = mathutil.MaxInt(m, v)
	}
	for _, v := range sl.Hi {
		m = mathutil.MaxInt(m, v)
	}
	return m
}

// levelSizing bundles one recursion level's computeLevelSizing outputs
// (solve_size / boundary_width / dt / last), grounded on the teacher's
// FindBestGranularity sizing-decision shape, specialized from
// latency/working-set tradeoffs to the AP planner's geometric recursion.
type levelSizing struct {
	solveSize     int
	boundaryWidth int
	dt            int
	last          bool
}

// computeLevelSizing implements spec.md §4.5 steps 2-3 exactly.
func computeLevelSizing(box grid.AABB, s stencil.TVStencil, remaining int, ratio float64) levelSizing {
	minE := minExtent(box)
	solveSize := mathutil.RoundEven(ratio * float64(minE))
	if solveSize < 1 {
		solveSize = 1
	}
	if solveSize > minE {
		solveSize = minE
	}
	boundaryWidth := (minE - solveSize) / 2

	sig := sigma(s)
	var dt int
	if sig <= 0 || boundaryWidth <= 0 {
		dt = 0
	} else {
		dt = boundaryWidth / sig
	}

	if dt >= remaining {
		dt = remaining
		if sig > 0 {
			boundaryWidth = sig * dt
		}
		return levelSizing{solveSize: minE - 2*boundaryWidth, boundaryWidth: boundaryWidth, dt: dt, last: true}
	}
	return levelSizing{solveSize: solveSize, boundaryWidth: boundaryWidth, dt: dt, last: false}
}
