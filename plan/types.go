// Package plan builds the AP (Aperiodic) solver's static plan DAG: a
// recursive decomposition of a bounded stencil evolution into periodic-FFT
// nodes over shrinking central regions and direct-solve frustum nodes along
// the boundary, generalizing the teacher's Subgraph/granularity/retention
// pipeline from tensor-op scheduling to stencil-evolution scheduling.
package plan

import (
	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/direct"
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/stencil"
)

// NodeKind identifies which of the three plan-node shapes a Node is.
type NodeKind int

const (
	NodePeriodic NodeKind = iota
	NodeBoundary
	NodeLeaf
)

func (k NodeKind) String() string {
	switch k {
	case NodePeriodic:
		return "periodic"
	case NodeBoundary:
		return "boundary"
	case NodeLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is one entry in the plan's arena. Index edges (Deps) refer to other
// Nodes by position in Plan.Nodes, matching the teacher's flat-slice,
// index-based dependency representation instead of a pointer graph.
type Node struct {
	Kind NodeKind

	// Region is the sub-box this node evolves, in the coordinate space of
	// the original root AABB passed to Build.
	Region grid.AABB

	// Steps is how many time steps this node advances Region by.
	Steps int

	// TimeOffset is added to the executor's global_time when this node
	// consults a BoundaryCondition or a TV kernel tree.
	TimeOffset int

	// Deps lists node indices that must finish before this node may run.
	Deps []int

	// SpectrumSlot/KernelSlot are scratch-slot indices for NodePeriodic
	// nodes (spec.md §4.5's "two complex-buffer slots"); -1 for
	// NodeBoundary/NodeLeaf, which use no FFT scratch.
	SpectrumSlot int
	KernelSlot   int
}

// ScratchSlot records the largest buffer any node assigned to this slot
// needs, in complex128 elements.
type ScratchSlot struct {
	Elements int64
}

// Bytes returns the slot's footprint, 16 bytes per complex128 element.
func (s ScratchSlot) Bytes() int64 { return s.Elements * 16 }

// Parameters configures the planner (spec.md §6's PlannerParameters).
type Parameters struct {
	PlanType   fftx.PlanType
	Cutoff     int
	Ratio      float64
	ChunkSize  int
	Threads    int
	WisdomPath string
}

// ConfigError is the K1 configuration-error kind (spec.md §7): invalid
// ratio/cutoff/empty AABB/weight-length mismatch. Build never panics for
// these; it always returns a *ConfigError instead.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "plan: invalid configuration: " + e.Reason
}

// Plan is the immutable, arena-based output of Build: a pure function of
// (dim, extents, stencil offsets, steps, cutoff, ratio) per spec.md §4.5 —
// identical inputs produce byte-identical plans.
type Plan struct {
	Root    grid.AABB
	Stencil stencil.TVStencil
	BC      boundary.Condition
	Params  Parameters

	Nodes        []Node
	ScratchSlots []ScratchSlot
	Applier      direct.Applier
}

// ScratchBytes is the total scratch footprint across every slot.
func (p *Plan) ScratchBytes() int64 {
	var total int64
	for _, s := range p.ScratchSlots {
		total += s.Bytes()
	}
	return total
}
