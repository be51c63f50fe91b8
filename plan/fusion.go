package plan

import "github.com/tealab-go/nhls/grid"

// frustumDirections enumerates every nonzero vector in {-1,0,1}^dim, in
// lexicographic order (axis 0 varies slowest). Each vector names exactly
// one face/edge/corner region of a box once a central sub-box has been
// carved out: dir[i] == -1 selects the low slab on axis i, +1 the high
// slab, 0 the central span. Because every boundary cell maps to exactly
// one such vector, this enumeration order is itself the corner/edge
// tie-break spec.md §4.5 calls for ("axis 0 wins, then axis 1, ...") —
// there is no separate assignment step to get wrong.
func frustumDirections(dim int) [][]int {
	var out [][]int
	cur := make([]int, dim)
	var rec func(axis int)
	rec = func(axis int) {
		if axis == dim {
			allZero := true
			for _, v := range cur {
				if v != 0 {
					allZero = false
					break
				}
			}
			if !allZero {
				cp := make([]int, dim)
				copy(cp, cur)
				out = append(out, cp)
			}
			return
		}
		for _, v := range []int{-1, 0, 1} {
			cur[axis] = v
			rec(axis + 1)
		}
	}
	rec(0)
	return out
}

// frustumRegion builds the sub-box of box that dir names, given the
// already-carved central region. Returns ok=false if the slab is empty
// (boundaryWidth == 0 on any axis dir touches).
func frustumRegion(box, central grid.AABB, dir []int) (grid.AABB, bool) {
	dim := box.Dim()
	lo := make([]int, dim)
	hi := make([]int, dim)
	for i := 0; i < dim; i++ {
		switch dir[i] {
		case 0:
			lo[i], hi[i] = central.Lo[i], central.Hi[i]
		case -1:
			lo[i], hi[i] = box.Lo[i], central.Lo[i]-1
		case 1:
			lo[i], hi[i] = central.Hi[i]+1, box.Hi[i]
		}
	}
	region := grid.New(lo, hi)
	return region, !region.Empty()
}
