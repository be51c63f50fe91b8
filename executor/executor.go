// Package executor walks a *plan.Plan's node list, dispatching periodic-FFT
// and direct-solve work across a bounded worker pool (spec.md §4.6), the
// generalization of the teacher's subgraph-scheduling loop from tensor ops
// to stencil-evolution plan nodes.
package executor

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tealab-go/nhls/direct"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/periodic"
	"github.com/tealab-go/nhls/plan"
)

// Executor applies one Plan, over and over across frames, against whatever
// in/out domain pair the caller passes to Apply. Periodic nodes cache their
// base kernel spectrum the first time they run and reuse it on every later
// frame (spec.md §4.6: "kernel built once per plan, raised per node from a
// cached base"). Executors are not safe for concurrent Apply calls on the
// same instance (spec.md §5); a sync/atomic guard turns a re-entrant call
// into a returned error instead of corrupting scratch.
type Executor struct {
	Plan    *plan.Plan
	Wrapper *fftx.Wrapper

	busy  int32
	bases map[int]*periodic.KernelBase
}

// New constructs an Executor bound to p, sharing wrapper's FFT plan cache
// across every periodic node.
func New(p *plan.Plan, wrapper *fftx.Wrapper) *Executor {
	return &Executor{Plan: p, Wrapper: wrapper, bases: make(map[int]*periodic.KernelBase)}
}

// ErrReentrant is returned by Apply when called while a previous Apply on
// the same Executor is still running.
var ErrReentrant = errors.New("executor: re-entrant Apply call")

// Apply walks the plan to completion: at return, out holds S^T·in over the
// full domain (spec.md §4.6 step 3).
func (e *Executor) Apply(in, out *domain.OwnedDomain, globalTime int) error {
	if in.Window.Dim() != e.Plan.Root.Dim() || out.Window.Dim() != e.Plan.Root.Dim() {
		panic("executor: in/out dimension does not match plan root")
	}
	if len(in.Buf) != len(out.Buf) {
		panic("executor: in/out buffer size mismatch")
	}

	if !atomic.CompareAndSwapInt32(&e.busy, 0, 1) {
		return ErrReentrant
	}
	defer atomic.StoreInt32(&e.busy, 0)

	gi := plan.AnalyzeGraph(e.Plan.Nodes)
	done := make([]bool, len(e.Plan.Nodes))

	threads := e.Plan.Params.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	chunk := e.Plan.Params.ChunkSize

	// A plan with dt < remaining (spec.md §4.5 step 6) emits several
	// sequential levels over the same box, each depending on the previous
	// level's full node set. Every wave must therefore read the state the
	// previous wave just produced, not the state Apply was called with, so
	// each completed node's region is folded back into in before the next
	// Ready() pass.
	for {
		ready := gi.Ready(e.Plan.Nodes, done)
		if len(ready) == 0 {
			break
		}
		g, _ := errgroup.WithContext(context.Background())
		g.SetLimit(threads)
		for _, idx := range ready {
			idx := idx
			g.Go(func() error {
				return e.applyNode(idx, in, out, globalTime, chunk)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for _, idx := range ready {
			done[idx] = true
			copyRegionFrom(in, out, e.Plan.Nodes[idx].Region)
		}
	}
	return nil
}

func (e *Executor) applyNode(idx int, in, out *domain.OwnedDomain, globalTime, chunk int) error {
	n := e.Plan.Nodes[idx]
	if n.Kind == plan.NodePeriodic {
		return e.applyPeriodic(idx, n, in, out, chunk)
	}
	return e.applyDirect(n, in, out, globalTime, chunk)
}

// kernelBaseFor returns the cached spectrum for node idx, building it from
// the plan's (time-invariant) constant stencil the first time it's needed.
func (e *Executor) kernelBaseFor(idx int, region grid.AABB) (*periodic.KernelBase, error) {
	if b, ok := e.bases[idx]; ok {
		return b, nil
	}
	offsets := e.Plan.Stencil.Offsets()
	weights := e.Plan.Stencil.Weights(0)
	b, err := periodic.BuildKernelBase(e.Wrapper, offsets, weights, region.ExclusiveBounds())
	if err != nil {
		return nil, errors.Wrapf(err, "executor: building kernel base for node %d", idx)
	}
	e.bases[idx] = b
	return b, nil
}

// applyPeriodic runs the periodic FFT over the node's region grown by
// sigma*Steps on every side (the belt the planner left around it), and
// writes back only the node's own region, whose cells the wrap-around of
// that transform cannot reach within Steps steps.
func (e *Executor) applyPeriodic(idx int, n plan.Node, in, out *domain.OwnedDomain, chunk int) error {
	halo := make([]int, n.Region.Dim())
	for i := range halo {
		halo[i] = stencilSigma(e.Plan.Stencil) * n.Steps
	}
	grown := n.Region.Grow(grid.Slopes{Lo: halo, Hi: halo}, 1)
	base, err := e.kernelBaseFor(idx, grown)
	if err != nil {
		return err
	}
	inBuf := extractRegion(in, grown)
	result, err := periodic.SolveWithBase(e.Wrapper, base, inBuf, n.Steps, chunk)
	if err != nil {
		return errors.Wrap(err, "executor: periodic node solve")
	}
	view := domain.NewSlice(grown, result)
	for i := int64(0); i < n.Region.BufferSize(); i++ {
		c := n.Region.Coord(i)
		out.Set(c, view.At(c))
	}
	return nil
}

// applyDirect solves a boundary/leaf node by evolving a local halo copy of
// its region, grown by sigma*Steps on every side and clipped to the plan's
// root domain, then writing only the inner region back into out. Every
// neighbor any of the node's Steps sub-steps could ever need lies inside
// that grown halo, so one self-contained BoxApply over the halo gives the
// same result as the spec's shrinking-frustum recursion without having to
// track the shrinking shape explicitly.
func (e *Executor) applyDirect(n plan.Node, in, out *domain.OwnedDomain, globalTime, chunk int) error {
	dim := n.Region.Dim()
	sig := stencilSigma(e.Plan.Stencil)
	halo := sig * n.Steps

	growBy := make([]int, dim)
	for i := range growBy {
		growBy[i] = halo
	}
	grown := n.Region.Grow(grid.Slopes{Lo: growBy, Hi: growBy}, 1)
	grown = clipToRoot(grown, e.Plan.Root)

	local := domain.NewOwned(grown)
	copyRegionInto(local, in, grown)

	evolved := domain.NewOwned(grown)
	t := globalTime + n.TimeOffset
	if err := direct.BoxApply(e.Plan.BC, e.Plan.Stencil, local, evolved, n.Steps, t, chunk); err != nil {
		return errors.Wrap(err, "executor: direct node apply")
	}

	copyRegionFrom(out, evolved, n.Region)
	return nil
}

func stencilSigma(s interface{ Slopes() grid.Slopes }) int {
	sl := s.Slopes()
	m := 0
	for _, v := range sl.Lo {
		if v > m {
			m = v
		}
	}
	for _, v := range sl.Hi {
		if v > m {
			m = v
		}
	}
	return m
}

func clipToRoot(b, root grid.AABB) grid.AABB {
	lo := make([]int, b.Dim())
	hi := make([]int, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = root.Lo[i]
		if b.Lo[i] > lo[i] {
			lo[i] = b.Lo[i]
		}
		hi[i] = root.Hi[i]
		if b.Hi[i] < hi[i] {
			hi[i] = b.Hi[i]
		}
	}
	return grid.New(lo, hi)
}

// extractRegion reads region's cells out of d in region's own row-major
// order, the layout periodic.Solve expects for its shape parameter. The
// packed buffer is addressed through a SliceDomain borrowing it rather than
// through raw linear indices, so the copy reads the same way copyRegionInto
// does against a real OwnedDomain.
func extractRegion(d *domain.OwnedDomain, region grid.AABB) []float64 {
	n := region.BufferSize()
	view := domain.NewSlice(region, make([]float64, n))
	for i := int64(0); i < n; i++ {
		c := region.Coord(i)
		view.Set(c, d.At(c))
	}
	return view.Buf
}

func scatterRegion(d *domain.OwnedDomain, region grid.AABB, buf []float64) {
	view := domain.NewSlice(region, buf)
	n := region.BufferSize()
	for i := int64(0); i < n; i++ {
		c := region.Coord(i)
		d.Set(c, view.At(c))
	}
}

// copyRegionInto fills local (whose Window is region) from src, which must
// fully contain region.
func copyRegionInto(local, src *domain.OwnedDomain, region grid.AABB) {
	n := region.BufferSize()
	for i := int64(0); i < n; i++ {
		c := region.Coord(i)
		local.Set(c, src.At(c))
	}
}

// copyRegionFrom writes only region's cells from evolved (whose Window is
// a superset of region) into dst.
func copyRegionFrom(dst, evolved *domain.OwnedDomain, region grid.AABB) {
	n := region.BufferSize()
	for i := int64(0); i < n; i++ {
		c := region.Coord(i)
		dst.Set(c, evolved.At(c))
	}
}
