package grid

// Slopes is a per-axis pair of positive/negative influence radii: how far,
// per time step, a stencil's offsets can reach in the low and high
// direction of each axis.
type Slopes struct {
	Lo, Hi []int
}

// Sigma returns the largest single-axis radius across both directions and
// all axes, the sigma(S) spec.md §4.5 uses to size boundary_width/dt.
func (s Slopes) Sigma() int {
	m := 0
	for i := range s.Lo {
		if s.Lo[i] > m {
			m = s.Lo[i]
		}
		if s.Hi[i] > m {
			m = s.Hi[i]
		}
	}
	return m
}

// AxisSigma returns the influence radius along a single axis.
func (s Slopes) AxisSigma(axis int) int {
	m := s.Lo[axis]
	if s.Hi[axis] > m {
		m = s.Hi[axis]
	}
	return m
}
