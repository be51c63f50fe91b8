package plan

import (
	"github.com/pkg/errors"
	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/direct"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/stencil"
)

// Build implements the AP planner recursion of spec.md §4.5: repeatedly
// carve a periodic-FFT-solvable central sub-box out of the current region,
// cover the remaining boundary frustum with direct-solve nodes, and
// recurse on the same region with the remaining time budget until the
// remaining time is fully consumed by a last level. A region whose smallest
// extent is below Cutoff, or too small to leave a boundary belt, becomes a
// single leaf node instead; since every level reuses the same region, this
// is decided by the root's size. Build never panics; malformed parameters
// come back as a *ConfigError (K1).
func Build(root grid.AABB, s stencil.TVStencil, steps int, bc boundary.Condition, params Parameters) (*Plan, error) {
	if err := validateParameters(root, s, steps, params); err != nil {
		return nil, err
	}

	var nodes []Node
	if err := buildLevel(root, s, steps, 0, bc, params, nil, &nodes); err != nil {
		return nil, errors.Wrap(err, "plan: building")
	}

	slots := assignScratchSlots(nodes)
	return &Plan{
		Root:         root,
		Stencil:      s,
		BC:           bc,
		Params:       params,
		Nodes:        nodes,
		ScratchSlots: slots,
		Applier:      direct.Generic{},
	}, nil
}

func validateParameters(root grid.AABB, s stencil.TVStencil, steps int, params Parameters) error {
	if root.Empty() {
		return &ConfigError{Reason: "root AABB is empty"}
	}
	if params.Ratio <= 0 || params.Ratio >= 1 {
		return &ConfigError{Reason: "ratio must be in (0,1)"}
	}
	if params.Cutoff < 1 {
		return &ConfigError{Reason: "cutoff must be >= 1"}
	}
	if steps < 0 {
		return &ConfigError{Reason: "steps must be >= 0"}
	}
	offsets := s.Offsets()
	weights := s.Weights(0)
	if len(offsets) == 0 {
		return &ConfigError{Reason: "stencil has no offsets"}
	}
	if len(offsets) != len(weights) {
		return &ConfigError{Reason: "stencil offset/weight length mismatch"}
	}
	if s.Dim() != root.Dim() {
		return &ConfigError{Reason: "stencil dimension does not match root AABB dimension"}
	}
	return nil
}

// buildLevel emits one recursion level's nodes (or a leaf covering box)
// into *nodes and recurses on the remaining time budget, per spec.md
// §4.5's steps 1-6. deps names the node indices every node at this level
// depends on (the previous level's full node set, or nil at the root).
func buildLevel(box grid.AABB, s stencil.TVStencil, remaining, doneSoFar int, bc boundary.Condition, params Parameters, deps []int, nodes *[]Node) error {
	if remaining <= 0 {
		return nil
	}

	if minExtent(box) < params.Cutoff {
		emitLeaf(box, remaining, doneSoFar, deps, nodes)
		return nil
	}

	sizing := computeLevelSizing(box, s, remaining, params.Ratio)
	if sizing.dt <= 0 || sizing.boundaryWidth <= 0 {
		emitLeaf(box, remaining, doneSoFar, deps, nodes)
		return nil
	}

	dim := box.Dim()
	bw := make([]int, dim)
	for i := range bw {
		bw[i] = sizing.boundaryWidth
	}
	central := box.Shrink(grid.Slopes{Lo: bw, Hi: bw}, 1)
	if central.Empty() {
		emitLeaf(box, remaining, doneSoFar, deps, nodes)
		return nil
	}

	periodicIdx := len(*nodes)
	*nodes = append(*nodes, Node{
		Kind: NodePeriodic, Region: central, Steps: sizing.dt,
		TimeOffset: doneSoFar, Deps: deps,
	})
	levelIdxs := []int{periodicIdx}

	for _, dir := range frustumDirections(dim) {
		region, ok := frustumRegion(box, central, dir)
		if !ok {
			continue
		}
		idx := len(*nodes)
		*nodes = append(*nodes, Node{
			Kind: NodeBoundary, Region: region, Steps: sizing.dt,
			TimeOffset: doneSoFar, Deps: deps, SpectrumSlot: -1, KernelSlot: -1,
		})
		levelIdxs = append(levelIdxs, idx)
	}

	if sizing.last {
		return nil
	}
	return buildLevel(box, s, remaining-sizing.dt, doneSoFar+sizing.dt, bc, params, levelIdxs, nodes)
}

func emitLeaf(box grid.AABB, steps, doneSoFar int, deps []int, nodes *[]Node) {
	*nodes = append(*nodes, Node{
		Kind: NodeLeaf, Region: box, Steps: steps, TimeOffset: doneSoFar,
		Deps: deps, SpectrumSlot: -1, KernelSlot: -1,
	})
}
