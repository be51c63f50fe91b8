package main

import (
	"math"
	"math/rand"

	"github.com/tealab-go/nhls/domain"
)

// gaussianIC fills d with a spatial gaussian impulse centered at center
// with the given variance, grounded on initial_conditions::ICType::Impulse.
func gaussianIC(d *domain.OwnedDomain, center []float64, variance float64) {
	n := d.Window.BufferSize()
	for i := int64(0); i < n; i++ {
		c := d.Window.Coord(i)
		var sq float64
		for axis, v := range c {
			diff := float64(v) - center[axis]
			sq += diff * diff
		}
		d.Buf[i] = math.Exp(-sq / (2 * variance))
	}
}

// randomIC fills d with uniform integers in [0, maxVal], grounded on
// initial_conditions::ICType::Rand{max_val}.
func randomIC(d *domain.OwnedDomain, maxVal int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range d.Buf {
		d.Buf[i] = float64(rng.Intn(maxVal + 1))
	}
}

// normalIC fills d with standard-normal samples, matching spec.md end-to-end
// scenario 3's "normal IC".
func normalIC(d *domain.OwnedDomain, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range d.Buf {
		d.Buf[i] = rng.NormFloat64()
	}
}
