package domain

import (
	"testing"

	"github.com/tealab-go/nhls/grid"
)

func TestOwnedDomainAtSet(t *testing.T) {
	w := grid.New([]int{0, 0}, []int{3, 3})
	d := NewOwned(w)
	d.Set(grid.Coord{2, 1}, 7)
	if got := d.At(grid.Coord{2, 1}); got != 7 {
		t.Fatalf("At() = %v, want 7", got)
	}
}

func TestOwnedDomainOutOfBoundsPanics(t *testing.T) {
	w := grid.New([]int{0}, []int{3})
	d := NewOwned(w)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-window coordinate")
		}
	}()
	d.At(grid.Coord{10})
}

func TestPingPongSwap(t *testing.T) {
	w := grid.New([]int{0}, []int{3})
	pp := NewPingPong(w)
	a, b := pp.A, pp.B
	pp.Swap()
	if pp.A != b || pp.B != a {
		t.Fatalf("Swap() did not exchange pointers")
	}
}

func TestSliceDomainAtSetBorrowsBuffer(t *testing.T) {
	w := grid.New([]int{0, 0}, []int{3, 3})
	buf := make([]float64, w.BufferSize())
	sd := NewSlice(w, buf)
	sd.Set(grid.Coord{1, 2}, 9)
	if got := sd.At(grid.Coord{1, 2}); got != 9 {
		t.Fatalf("At() = %v, want 9", got)
	}
	idx, ok := w.LinearIndex(grid.Coord{1, 2})
	if !ok || buf[idx] != 9 {
		t.Fatalf("Set() did not write through to the borrowed buffer")
	}
}

func TestSliceDomainOutOfBoundsPanics(t *testing.T) {
	w := grid.New([]int{0}, []int{3})
	sd := NewSlice(w, make([]float64, w.BufferSize()))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-window coordinate")
		}
	}()
	sd.At(grid.Coord{10})
}

func TestParallelSet(t *testing.T) {
	w := grid.New([]int{0}, []int{99})
	d := NewOwned(w)
	d.ParallelSet(3.5, 7)
	for i, v := range d.Buf {
		if v != 3.5 {
			t.Fatalf("buf[%d] = %v, want 3.5", i, v)
		}
	}
}
