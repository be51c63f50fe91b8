package plan

import (
	"reflect"
	"testing"

	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/stencil"
)

func heat1D() stencil.TVStencil {
	k := 0.25
	return stencil.ConstStencil{S: stencil.Stencil{
		Offsets: []grid.Coord{{-1}, {0}, {1}},
		Weights: []float64{k, 1 - 2*k, k},
	}}
}

func defaultParams() Parameters {
	return Parameters{PlanType: fftx.Estimate, Cutoff: 8, Ratio: 0.5, ChunkSize: 64, Threads: 4}
}

func TestBuildIsDeterministic(t *testing.T) {
	root := grid.New([]int{0}, []int{199})
	p1, err := Build(root, heat1D(), 40, boundary.Constant(0), defaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p2, err := Build(root, heat1D(), 40, boundary.Constant(0), defaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(p1.Nodes, p2.Nodes) {
		t.Fatalf("identical inputs produced different node lists:\n%+v\nvs\n%+v", p1.Nodes, p2.Nodes)
	}
	if !reflect.DeepEqual(p1.ScratchSlots, p2.ScratchSlots) {
		t.Fatalf("identical inputs produced different scratch slots")
	}
}

func TestBuildEmitsMultipleLevels(t *testing.T) {
	root := grid.New([]int{0}, []int{999})
	p, err := Build(root, heat1D(), 400, boundary.Constant(0), Parameters{PlanType: fftx.Estimate, Cutoff: 40, Ratio: 0.5, ChunkSize: 64, Threads: 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var periodicCount, boundaryCount int
	for _, n := range p.Nodes {
		switch n.Kind {
		case NodePeriodic:
			periodicCount++
		case NodeBoundary:
			boundaryCount++
		}
	}
	if periodicCount == 0 {
		t.Fatalf("expected at least one periodic node, got none among %d nodes", len(p.Nodes))
	}
	if boundaryCount == 0 {
		t.Fatalf("expected at least one boundary node")
	}

	totalSteps := 0
	depth := 0
	for _, n := range p.Nodes {
		if n.Kind == NodePeriodic {
			totalSteps += n.Steps
			depth++
		}
	}
	if depth < 2 {
		t.Fatalf("expected at least 2 recursion levels, got %d", depth)
	}
	if totalSteps != 400 {
		t.Fatalf("periodic nodes cover %d steps, want 400", totalSteps)
	}
}

func TestBuildCoversFullTimeBudget(t *testing.T) {
	root := grid.New([]int{0}, []int{199})
	const T = 40
	p, err := Build(root, heat1D(), T, boundary.Constant(0), defaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	gi := AnalyzeGraph(p.Nodes)
	if len(gi.TopoOrder) != len(p.Nodes) {
		t.Fatalf("topo order length %d != node count %d (cycle or bug)", len(gi.TopoOrder), len(p.Nodes))
	}

	// The furthest step any node reaches (TimeOffset+Steps) must be exactly
	// T (spec.md §4.5 step 3's "last level" contract).
	byIdx := make(map[int]Node, len(p.Nodes))
	for i, n := range p.Nodes {
		byIdx[i] = n
	}
	maxCovered := 0
	for _, n := range p.Nodes {
		covered := n.TimeOffset + n.Steps
		if covered > maxCovered {
			maxCovered = covered
		}
	}
	if maxCovered != T {
		t.Fatalf("plan covers %d steps, want %d", maxCovered, T)
	}
}

func TestScratchSlotsDoNotExceedTwoForSequentialRecursion(t *testing.T) {
	root := grid.New([]int{0}, []int{999})
	p, err := Build(root, heat1D(), 400, boundary.Constant(0), Parameters{PlanType: fftx.Estimate, Cutoff: 40, Ratio: 0.5, ChunkSize: 64, Threads: 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Periodic nodes form a strict sequential chain (each level depends on
	// the previous), so a correct liveness scan never needs more than two
	// live slots (spectrum + kernel-spectrum) at once.
	if len(p.ScratchSlots) > 2 {
		t.Fatalf("expected at most 2 scratch slots, got %d", len(p.ScratchSlots))
	}
	if p.ScratchBytes() <= 0 {
		t.Fatalf("expected positive scratch footprint")
	}
}

func TestBuildRejectsInvalidRatio(t *testing.T) {
	root := grid.New([]int{0}, []int{99})
	_, err := Build(root, heat1D(), 10, boundary.Constant(0), Parameters{Ratio: 1.5, Cutoff: 8})
	if err == nil {
		t.Fatalf("expected ConfigError for ratio > 1")
	}
	var cfgErr *ConfigError
	if !asConfigError(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
}

func TestBuildRejectsEmptyRoot(t *testing.T) {
	root := grid.New([]int{5}, []int{2})
	_, err := Build(root, heat1D(), 10, boundary.Constant(0), defaultParams())
	if err == nil {
		t.Fatalf("expected ConfigError for empty root AABB")
	}
}

func TestToDotFileWrites(t *testing.T) {
	root := grid.New([]int{0}, []int{99})
	p, err := Build(root, heat1D(), 20, boundary.Constant(0), defaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := t.TempDir() + "/plan.dot"
	if err := p.ToDotFile(path); err != nil {
		t.Fatalf("ToDotFile: %v", err)
	}
}

func asConfigError(err error, target **ConfigError) bool {
	for err != nil {
		if ce, ok := err.(*ConfigError); ok {
			*target = ce
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
