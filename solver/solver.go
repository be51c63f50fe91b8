// Package solver is the driver-facing API (spec.md §6): it owns a
// plan.Plan, an executor, the BoundaryCondition and TVStencil that
// produced it, and wraps plan/executor construction behind the single
// constructor call the original's APSolver::new offered.
package solver

import (
	"os"
	"runtime"

	"github.com/pkg/errors"

	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/buildinfo"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/executor"
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/plan"
	"github.com/tealab-go/nhls/stencil"
	"github.com/tealab-go/nhls/tv"
)

// APSolver bundles a plan, its executor, and the FFT wrapper that built it,
// matching the original's APSolver::new(bc, stencil, aabb, steps, params,
// n_threads) / apply / print_report surface.
type APSolver struct {
	Plan    *plan.Plan
	Wrapper *fftx.Wrapper
	exec    *executor.Executor
}

// NewAPSolver builds a plan for a constant-in-time stencil over aabb and
// wraps it in an executor. params.Threads, if zero, defaults to
// runtime.GOMAXPROCS(0) inside the executor.
func NewAPSolver(bc boundary.Condition, s stencil.TVStencil, aabb grid.AABB, stepsPerFrame int, params plan.Parameters) (*APSolver, error) {
	p, err := plan.Build(aabb, s, stepsPerFrame, bc, params)
	if err != nil {
		return nil, errors.Wrap(err, "solver: building plan")
	}
	wrapper, err := fftx.NewWrapper(params.PlanType, params.WisdomPath)
	if err != nil {
		return nil, errors.Wrap(err, "solver: building FFT wrapper")
	}
	if params.WisdomPath != "" {
		if err := wrapper.SaveWisdom(params.WisdomPath); err != nil {
			return nil, errors.Wrap(err, "solver: saving wisdom")
		}
	}
	return &APSolver{Plan: p, Wrapper: wrapper, exec: executor.New(p, wrapper)}, nil
}

// Apply advances in by one frame (p.Nodes' full time budget), writing the
// result to out. globalTime is the frame's starting absolute step count,
// consulted by the plan's BoundaryCondition.
func (a *APSolver) Apply(in, out *domain.OwnedDomain, globalTime int) error {
	return a.exec.Apply(in, out, globalTime)
}

// ToDotFile renders the plan DAG as Graphviz DOT to path.
func (a *APSolver) ToDotFile(path string) error {
	return a.Plan.ToDotFile(path)
}

// PrintReport writes a buildinfo.Report describing this solver's plan to
// stdout.
func (a *APSolver) PrintReport() error {
	r := buildinfo.NewReport("nhls-ap", len(a.Plan.Nodes), a.Plan.ScratchBytes(), threadsOf(a.Plan.Params))
	return buildinfo.Print(os.Stdout, r)
}

// TVAPSolver is the time-varying-stencil counterpart: same construction
// shape, but Apply dispatches through tv.APSolver instead of
// executor.Executor so each periodic node consults the kernel tree.
type TVAPSolver struct {
	Plan    *plan.Plan
	Wrapper *fftx.Wrapper
	exec    *tv.APSolver
}

// NewTVAPSolver builds a plan for a genuinely time-varying stencil (e.g.
// stencil.RotatingAdvection) and wraps it in a tv.APSolver.
func NewTVAPSolver(bc boundary.Condition, s stencil.TVStencil, aabb grid.AABB, stepsPerFrame int, params plan.Parameters) (*TVAPSolver, error) {
	p, err := plan.Build(aabb, s, stepsPerFrame, bc, params)
	if err != nil {
		return nil, errors.Wrap(err, "solver: building plan")
	}
	wrapper, err := fftx.NewWrapper(params.PlanType, params.WisdomPath)
	if err != nil {
		return nil, errors.Wrap(err, "solver: building FFT wrapper")
	}
	if params.WisdomPath != "" {
		if err := wrapper.SaveWisdom(params.WisdomPath); err != nil {
			return nil, errors.Wrap(err, "solver: saving wisdom")
		}
	}
	return &TVAPSolver{Plan: p, Wrapper: wrapper, exec: tv.NewAPSolver(p, wrapper)}, nil
}

func (a *TVAPSolver) Apply(in, out *domain.OwnedDomain, globalTime int) error {
	return a.exec.Apply(in, out, globalTime)
}

func (a *TVAPSolver) ToDotFile(path string) error {
	return a.Plan.ToDotFile(path)
}

func (a *TVAPSolver) PrintReport() error {
	r := buildinfo.NewReport("nhls-tv-ap", len(a.Plan.Nodes), a.Plan.ScratchBytes(), threadsOf(a.Plan.Params))
	return buildinfo.Print(os.Stdout, r)
}

func threadsOf(p plan.Parameters) int {
	if p.Threads > 0 {
		return p.Threads
	}
	return runtime.GOMAXPROCS(0)
}
