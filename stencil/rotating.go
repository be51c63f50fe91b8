package stencil

import (
	"math"

	"github.com/tealab-go/nhls/grid"
)

// RotatingAdvection is the TV scenario-6 stencil: a 5-point 2-D cross whose
// off-center weights rotate sinusoidally with global time, modeling
// advection whose direction precesses with period freq steps.
type RotatingAdvection struct {
	Freq    float64
	Central float64
}

var rotatingOffsets = []grid.Coord{
	{0, 0},
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
}

func (r RotatingAdvection) Dim() int              { return 2 }
func (r RotatingAdvection) Offsets() []grid.Coord { return rotatingOffsets }

func (r RotatingAdvection) Slopes() grid.Slopes {
	return grid.Slopes{Lo: []int{1, 1}, Hi: []int{1, 1}}
}

// Weights returns the 5 weights at global time t. The four off-center
// weights split (1-Central)/2 between the x and y axes, modulated by a
// rotation angle that advances 2*pi/Freq per step.
func (r RotatingAdvection) Weights(t int) []float64 {
	angle := 2 * math.Pi * float64(t) / r.Freq
	spread := (1 - r.Central) / 2
	cx := spread * (0.5 + 0.5*math.Cos(angle))
	cy := spread - cx
	return []float64{
		r.Central,
		cx, cx,
		cy, cy,
	}
}
