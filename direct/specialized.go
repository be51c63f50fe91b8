package direct

import (
	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/internal/parallelx"
)

// is3pt1D reports whether offsets is exactly the 1-D {-1,0,1} cross, the
// shape apply3pt1D's hardcoded arithmetic assumes.
func is3pt1D(offsets []grid.Coord) bool {
	if len(offsets) != 3 {
		return false
	}
	seen := map[int]bool{}
	for _, o := range offsets {
		if len(o) != 1 {
			return false
		}
		seen[o[0]] = true
	}
	return seen[-1] && seen[0] && seen[1]
}

// is5pt2D reports whether offsets is exactly the 2-D 5-point cross.
func is5pt2D(offsets []grid.Coord) bool {
	if len(offsets) != 5 {
		return false
	}
	want := map[[2]int]bool{{0, 0}: true, {1, 0}: true, {-1, 0}: true, {0, 1}: true, {0, -1}: true}
	for _, o := range offsets {
		if len(o) != 2 {
			return false
		}
		if !want[[2]int{o[0], o[1]}] {
			return false
		}
	}
	return true
}

func mapWeights3pt(offsets []grid.Coord, weights []float64) (wl, wc, wr float64) {
	for i, o := range offsets {
		switch o[0] {
		case -1:
			wl = weights[i]
		case 0:
			wc = weights[i]
		case 1:
			wr = weights[i]
		}
	}
	return
}

// apply3pt1D hardcodes the 1-D heat-equation-shaped cross for interior
// cells (both neighbors in-window) and falls back to the generic gather
// path for the two boundary cells.
func apply3pt1D(bc boundary.Condition, offsets []grid.Coord, weights []float64, src, dst *domain.OwnedDomain, t, chunkSize int) {
	window := src.Window
	lo, hi := window.Lo[0], window.Hi[0]
	n := hi - lo + 1
	if n < 3 {
		applyGeneric(bc, offsets, weights, src, dst, t, chunkSize)
		return
	}

	wl, wc, wr := mapWeights3pt(offsets, weights)
	neighbors := make([]float64, 3)

	Gather(src, bc, offsets, t, grid.Coord{lo}, neighbors)
	dst.Buf[0] = weightedSum(weights, neighbors)

	Gather(src, bc, offsets, t, grid.Coord{hi}, neighbors)
	dst.Buf[n-1] = weightedSum(weights, neighbors)

	parallelx.Execute(n-2, chunkSize, func(start, end int) {
		for i := start; i < end; i++ {
			idx := i + 1
			dst.Buf[idx] = wl*src.Buf[idx-1] + wc*src.Buf[idx] + wr*src.Buf[idx+1]
		}
	})
}

func weightedSum(weights, values []float64) float64 {
	var sum float64
	for i, w := range weights {
		sum += w * values[i]
	}
	return sum
}

// apply5pt2D hardcodes the 2-D 5-point cross for cells whose full
// footprint lies strictly inside the window, and falls back to the
// generic gather path along the one-cell border.
func apply5pt2D(bc boundary.Condition, offsets []grid.Coord, weights []float64, src, dst *domain.OwnedDomain, t, chunkSize int) {
	window := src.Window
	loX, hiX := window.Lo[0], window.Hi[0]
	loY, hiY := window.Lo[1], window.Hi[1]
	exX := hiX - loX + 1

	var wc, wxp, wxm, wyp, wym float64
	for i, o := range offsets {
		switch {
		case o[0] == 0 && o[1] == 0:
			wc = weights[i]
		case o[0] == 1 && o[1] == 0:
			wxp = weights[i]
		case o[0] == -1 && o[1] == 0:
			wxm = weights[i]
		case o[0] == 0 && o[1] == 1:
			wyp = weights[i]
		case o[0] == 0 && o[1] == -1:
			wym = weights[i]
		}
	}

	n := len(dst.Buf)
	parallelx.Execute(n, chunkSize, func(start, end int) {
		neighbors := make([]float64, 5)
		for idx := start; idx < end; idx++ {
			c := window.Coord(int64(idx))
			x, y := c[0], c[1]
			if x > loX && x < hiX && y > loY && y < hiY {
				base := idx
				dst.Buf[idx] = wc*src.Buf[base] +
					wxp*src.Buf[base+1] + wxm*src.Buf[base-1] +
					wyp*src.Buf[base+exX] + wym*src.Buf[base-exX]
				continue
			}
			Gather(src, bc, offsets, t, c, neighbors)
			dst.Buf[idx] = weightedSum(weights, neighbors)
		}
	})
}
