// Package grid provides the axis-aligned bounding box, coordinate and
// slope arithmetic every other package builds its geometry on.
package grid

import (
	"fmt"
	"strings"
)

// Coord is a point in Z^D. Its length is the dimension D.
type Coord []int

// Clone returns an independent copy of c.
func (c Coord) Clone() Coord {
	out := make(Coord, len(c))
	copy(out, c)
	return out
}

// Add returns c + o elementwise; panics if lengths differ.
func (c Coord) Add(o Coord) Coord {
	if len(c) != len(o) {
		panic("grid: Coord.Add dimension mismatch")
	}
	out := make(Coord, len(c))
	for i := range c {
		out[i] = c[i] + o[i]
	}
	return out
}

// AABB is an inclusive integer bounding box [Lo_i, Hi_i] per axis.
type AABB struct {
	Lo, Hi []int
}

// New constructs an AABB from inclusive per-axis bounds. Panics if lengths
// differ or any axis is malformed beyond what Empty tolerates (Lo > Hi is
// allowed and represents a degenerate/empty box).
func New(lo, hi []int) AABB {
	if len(lo) != len(hi) {
		panic("grid: AABB lo/hi dimension mismatch")
	}
	return AABB{Lo: append([]int(nil), lo...), Hi: append([]int(nil), hi...)}
}

// Dim returns the number of axes.
func (b AABB) Dim() int { return len(b.Lo) }

// Empty reports whether any axis has Hi < Lo.
func (b AABB) Empty() bool {
	for i := range b.Lo {
		if b.Hi[i] < b.Lo[i] {
			return true
		}
	}
	return false
}

// ExclusiveBounds returns hi-lo+1 per axis. Degenerate axes yield <= 0.
func (b AABB) ExclusiveBounds() []int {
	e := make([]int, b.Dim())
	for i := range e {
		e[i] = b.Hi[i] - b.Lo[i] + 1
	}
	return e
}

// BufferSize returns the product of ExclusiveBounds, 0 if the box is empty.
func (b AABB) BufferSize() int64 {
	if b.Empty() {
		return 0
	}
	size := int64(1)
	for _, e := range b.ExclusiveBounds() {
		size *= int64(e)
	}
	return size
}

// Contains reports whether c lies within the inclusive bounds on every
// axis. Dimension mismatch is a programmer error.
func (b AABB) Contains(c Coord) bool {
	if len(c) != b.Dim() {
		panic("grid: AABB.Contains dimension mismatch")
	}
	for i, v := range c {
		if v < b.Lo[i] || v > b.Hi[i] {
			return false
		}
	}
	return true
}

// LinearIndex computes the row-major, axis-0-fastest linear offset of c
// within b. ok is false if c is out of bounds; the returned index is then
// meaningless and must not be used to address a buffer.
func (b AABB) LinearIndex(c Coord) (idx int64, ok bool) {
	if len(c) != b.Dim() {
		panic("grid: AABB.LinearIndex dimension mismatch")
	}
	if !b.Contains(c) {
		return 0, false
	}
	e := b.ExclusiveBounds()
	stride := int64(1)
	for i := 0; i < b.Dim(); i++ {
		idx += int64(c[i]-b.Lo[i]) * stride
		stride *= int64(e[i])
	}
	return idx, true
}

// Coord reconstructs the coordinate at linear offset idx, the inverse of
// LinearIndex. Caller must ensure idx is in [0, BufferSize()).
func (b AABB) Coord(idx int64) Coord {
	e := b.ExclusiveBounds()
	c := make(Coord, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		c[i] = b.Lo[i] + int(idx%int64(e[i]))
		idx /= int64(e[i])
	}
	return c
}

// Shrink applies Slopes over dt steps: lo' = lo + s.Lo*dt, hi' = hi -
// s.Hi*dt. The result may be Empty if dt is large enough to close an axis.
func (b AABB) Shrink(s Slopes, dt int) AABB {
	out := AABB{Lo: make([]int, b.Dim()), Hi: make([]int, b.Dim())}
	for i := 0; i < b.Dim(); i++ {
		out.Lo[i] = b.Lo[i] + s.Lo[i]*dt
		out.Hi[i] = b.Hi[i] - s.Hi[i]*dt
	}
	return out
}

// Grow is the inverse of Shrink: it expands b outward by s over dt steps.
func (b AABB) Grow(s Slopes, dt int) AABB {
	out := AABB{Lo: make([]int, b.Dim()), Hi: make([]int, b.Dim())}
	for i := 0; i < b.Dim(); i++ {
		out.Lo[i] = b.Lo[i] - s.Lo[i]*dt
		out.Hi[i] = b.Hi[i] + s.Hi[i]*dt
	}
	return out
}

// String renders b as matrix![lo0,hi0; lo1,hi1; ...], the convention
// spec.md fixes for printed AABBs.
func (b AABB) String() string {
	parts := make([]string, b.Dim())
	for i := range parts {
		parts[i] = fmt.Sprintf("%d,%d", b.Lo[i], b.Hi[i])
	}
	return "matrix![" + strings.Join(parts, "; ") + "]"
}
