// Package domain provides owning and non-owning rectangular views over a
// flat float64 buffer, plus the ping-pong pairing solvers shuttle between
// frames.
package domain

import (
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/internal/parallelx"
)

// OwnedDomain owns its backing buffer.
type OwnedDomain struct {
	Window grid.AABB
	Buf    []float64
}

// NewOwned allocates a zeroed OwnedDomain covering window.
func NewOwned(window grid.AABB) *OwnedDomain {
	return &OwnedDomain{Window: window, Buf: make([]float64, window.BufferSize())}
}

// At reads the value at c. Panics (K4 programmer error) if c is outside
// Window or the buffer is undersized for Window.
func (d *OwnedDomain) At(c grid.Coord) float64 {
	idx, ok := d.Window.LinearIndex(c)
	if !ok {
		panic("domain: coordinate outside window")
	}
	if int64(len(d.Buf)) <= idx {
		panic("domain: buffer too small for window")
	}
	return d.Buf[idx]
}

// Set writes v at c, same panics as At.
func (d *OwnedDomain) Set(c grid.Coord, v float64) {
	idx, ok := d.Window.LinearIndex(c)
	if !ok {
		panic("domain: coordinate outside window")
	}
	d.Buf[idx] = v
}

// ParallelSet assigns v to every cell, chunked across workers.
func (d *OwnedDomain) ParallelSet(v float64, chunkSize int) {
	parallelx.Execute(len(d.Buf), chunkSize, func(start, end int) {
		for i := start; i < end; i++ {
			d.Buf[i] = v
		}
	})
}

// ForEachChunk calls fn once per contiguous [start,end) chunk of the
// buffer, generalizing the per-cell RHS/IC iteration the original driver
// examples expressed as a custom iterator (original_source apply_iter.rs)
// into a plain Go callback walker.
func (d *OwnedDomain) ForEachChunk(chunkSize int, fn func(start, end int)) {
	parallelx.Execute(len(d.Buf), chunkSize, fn)
}

// SliceDomain is a non-owning view over a caller-provided buffer, used for
// scoped sub-region operations (e.g. a plan node's central sub-box) without
// allocating a second OwnedDomain just to get by-coordinate addressing over
// a buffer the caller already owns (such as the packed region buffer handed
// to an FFT call).
type SliceDomain struct {
	Window grid.AABB
	Buf    []float64
}

// NewSlice wraps buf as a SliceDomain over window. len(buf) must equal
// window.BufferSize(); the caller retains ownership of buf.
func NewSlice(window grid.AABB, buf []float64) *SliceDomain {
	return &SliceDomain{Window: window, Buf: buf}
}

// At reads the value at c, same contract as OwnedDomain.At.
func (d *SliceDomain) At(c grid.Coord) float64 {
	idx, ok := d.Window.LinearIndex(c)
	if !ok {
		panic("domain: coordinate outside window")
	}
	return d.Buf[idx]
}

// Set writes v at c, same contract as OwnedDomain.Set.
func (d *SliceDomain) Set(c grid.Coord, v float64) {
	idx, ok := d.Window.LinearIndex(c)
	if !ok {
		panic("domain: coordinate outside window")
	}
	d.Buf[idx] = v
}

// PingPong holds two owned buffers that frames swap between, so the
// underlying storage never moves — only which pointer is "current in" and
// "current out" changes.
type PingPong struct {
	A, B *OwnedDomain
}

// NewPingPong allocates both buffers over window.
func NewPingPong(window grid.AABB) *PingPong {
	return &PingPong{A: NewOwned(window), B: NewOwned(window)}
}

// Swap exchanges A and B.
func (p *PingPong) Swap() {
	p.A, p.B = p.B, p.A
}
