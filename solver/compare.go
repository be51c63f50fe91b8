package solver

import "math"

// MaxAbsError returns the largest absolute pointwise difference between a
// and b, grounded on heat_error.rs's role of comparing solver output
// against a reference by writing both out and diffing; here done in
// memory rather than through a CSV round trip.
func MaxAbsError(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("solver: MaxAbsError operands have different lengths")
	}
	var max float64
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > max {
			max = d
		}
	}
	return max
}
