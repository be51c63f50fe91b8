package plan

import (
	"fmt"
	"os"
	"strings"
)

// ToDot renders the plan's node list and dependency edges as a Graphviz DOT
// graph, grounded on the teacher's VisualizeSolution subgraph-cluster DOT
// emitter, generalized from tensor/op nodes to periodic/boundary/leaf plan
// nodes. It only renders the DOT text; invoking Graphviz itself is left to
// the caller, since this is a debugging aid, not a correctness dependency.
func (p *Plan) ToDot() string {
	var sb strings.Builder
	sb.WriteString("digraph Plan {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Arial\"];\n\n")

	for i, n := range p.Nodes {
		color := "lightyellow"
		switch n.Kind {
		case NodePeriodic:
			color = "lightblue"
		case NodeLeaf:
			color = "lightgreen"
		}
		label := fmt.Sprintf("N%d\\n%s\\nregion=%s\\nsteps=%d t0=%d", i, n.Kind, n.Region, n.Steps, n.TimeOffset)
		sb.WriteString(fmt.Sprintf("  N%d [label=\"%s\", fillcolor=\"%s\"];\n", i, label, color))
	}

	sb.WriteString("\n")
	for i, n := range p.Nodes {
		for _, dep := range n.Deps {
			sb.WriteString(fmt.Sprintf("  N%d -> N%d;\n", dep, i))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// ToDotFile writes ToDot's output to path (spec.md §6's to_dot_file).
func (p *Plan) ToDotFile(path string) error {
	return os.WriteFile(path, []byte(p.ToDot()), 0o644)
}
