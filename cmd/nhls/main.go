// Command nhls drives the AP and TV-AP solvers from the command line: the
// ambient "how a user runs this" layer, outside the core solver's scope
// (spec.md §6's "output consumers" boundary), grounded on the teacher
// corpus's urfave/cli + fatih/color driver idiom (xtaci-kcptun's
// server/main.go).
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/tealab-go/nhls/boundary"
	"github.com/tealab-go/nhls/domain"
	"github.com/tealab-go/nhls/fftx"
	"github.com/tealab-go/nhls/grid"
	"github.com/tealab-go/nhls/plan"
	"github.com/tealab-go/nhls/solver"
	"github.com/tealab-go/nhls/stencil"
)

// VERSION is populated via -ldflags when packaging official binaries,
// mirroring xtaci-kcptun's VERSION = "SELFBUILD" idiom.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	app := cli.NewApp()
	app.Name = "nhls"
	app.Usage = "aperiodic FFT stencil evolution solver"
	app.Version = VERSION

	commonFlags := []cli.Flag{
		cli.IntFlag{Name: "lo", Value: 0, Usage: "inclusive lower AABB bound, used on every axis"},
		cli.StringFlag{Name: "extent", Value: "999", Usage: "inclusive upper AABB bound per axis (comma-separated)"},
		cli.IntFlag{Name: "steps", Value: 400, Usage: "steps per frame"},
		cli.IntFlag{Name: "cutoff", Value: 40, Usage: "planner cutoff"},
		cli.Float64Flag{Name: "ratio", Value: 0.5, Usage: "planner central-region ratio"},
		cli.IntFlag{Name: "chunksize", Value: 1000, Usage: "parallel chunk size"},
		cli.IntFlag{Name: "threads", Value: 0, Usage: "worker count (0 = GOMAXPROCS)"},
		cli.StringFlag{Name: "wisdom", Value: "", Usage: "FFT wisdom file path"},
		cli.StringFlag{Name: "ic", Value: "zero", Usage: "initial condition: zero, gaussian, random, normal"},
		cli.Int64Flag{Name: "seed", Value: 1024, Usage: "IC PRNG seed"},
		cli.StringFlag{Name: "dot", Value: "", Usage: "write plan DAG to this Graphviz DOT path"},
		cli.BoolFlag{Name: "report", Usage: "print a buildinfo JSON report before running"},
	}

	app.Commands = []cli.Command{
		{
			Name:  "heat1d",
			Usage: "run the 1-D constant heat stencil",
			Flags: commonFlags,
			Action: func(c *cli.Context) error {
				return runHeat1D(c)
			},
		},
		{
			Name:  "tv",
			Usage: "run a time-varying rotating-advection stencil",
			Flags: append(commonFlags,
				cli.Float64Flag{Name: "freq", Value: 100.0, Usage: "rotating advection frequency"},
				cli.Float64Flag{Name: "central", Value: 0.2, Usage: "rotating advection central weight"},
			),
			Action: func(c *cli.Context) error {
				return runTV(c)
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseExtent(s string, dim int) []int {
	parts := strings.Split(s, ",")
	out := make([]int, dim)
	for i := range out {
		v := 999
		if i < len(parts) {
			fmt.Sscanf(parts[i], "%d", &v)
		}
		out[i] = v
	}
	return out
}

func runHeat1D(c *cli.Context) error {
	root := grid.New([]int{c.Int("lo")}, parseExtent(c.String("extent"), 1))
	bc := boundary.Constant(0)
	s := stencil.ConstStencil{S: stencil.Stencil{
		Offsets: []grid.Coord{{-1}, {0}, {1}},
		Weights: []float64{0.5, 0, 0.5},
	}}

	params := plan.Parameters{
		PlanType:   fftx.Estimate,
		Cutoff:     c.Int("cutoff"),
		Ratio:      c.Float64("ratio"),
		ChunkSize:  c.Int("chunksize"),
		Threads:    c.Int("threads"),
		WisdomPath: c.String("wisdom"),
	}

	ap, err := solver.NewAPSolver(bc, s, root, c.Int("steps"), params)
	if err != nil {
		return err
	}
	if c.Bool("report") {
		if err := ap.PrintReport(); err != nil {
			log.Println("nhls: printing report:", err)
		}
	}
	if dot := c.String("dot"); dot != "" {
		if err := ap.ToDotFile(dot); err != nil {
			log.Println("nhls: writing DOT file:", err)
		}
	}

	in := domain.NewOwned(root)
	applyIC(in, c)
	out := domain.NewOwned(root)
	if err := ap.Apply(in, out, 0); err != nil {
		return err
	}
	fmt.Printf("final cell %v = %v\n", root.Hi, out.At(root.Hi))
	return nil
}

func runTV(c *cli.Context) error {
	root := grid.New([]int{c.Int("lo"), c.Int("lo")}, parseExtent(c.String("extent"), 2))
	bc := boundary.Constant(0)
	s := stencil.RotatingAdvection{Freq: c.Float64("freq"), Central: c.Float64("central")}

	params := plan.Parameters{
		PlanType:   fftx.Estimate,
		Cutoff:     c.Int("cutoff"),
		Ratio:      c.Float64("ratio"),
		ChunkSize:  c.Int("chunksize"),
		Threads:    c.Int("threads"),
		WisdomPath: c.String("wisdom"),
	}

	tvSolver, err := solver.NewTVAPSolver(bc, s, root, c.Int("steps"), params)
	if err != nil {
		return err
	}
	if c.Bool("report") {
		if err := tvSolver.PrintReport(); err != nil {
			log.Println("nhls: printing report:", err)
		}
	}
	if dot := c.String("dot"); dot != "" {
		if err := tvSolver.ToDotFile(dot); err != nil {
			log.Println("nhls: writing DOT file:", err)
		}
	}

	in := domain.NewOwned(root)
	applyIC(in, c)
	out := domain.NewOwned(root)
	if err := tvSolver.Apply(in, out, 0); err != nil {
		return err
	}
	fmt.Printf("final cell %v = %v\n", root.Hi, out.At(root.Hi))
	return nil
}

func applyIC(d *domain.OwnedDomain, c *cli.Context) {
	switch c.String("ic") {
	case "gaussian":
		center := make([]float64, d.Window.Dim())
		for i := range center {
			center[i] = float64(d.Window.Lo[i]+d.Window.Hi[i]) / 2
		}
		gaussianIC(d, center, 1600)
	case "random":
		randomIC(d, 100, c.Int64("seed"))
	case "normal":
		normalIC(d, c.Int64("seed"))
	default:
		// zero: OwnedDomain starts zeroed.
	}
}
