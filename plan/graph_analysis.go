package plan

// GraphInfo is the dependency analysis of a Plan's node list: which nodes
// depend on which, and one valid topological order. Grounded on the
// teacher's AnalyzeGraph/topologicalSort, simplified because Plan.Nodes
// already carries explicit index-edge Deps (no tensor-producer/consumer
// inference step is needed).
type GraphInfo struct {
	Dependents [][]int
	TopoOrder  []int
}

// AnalyzeGraph builds dependent-edges (the inverse of each node's Deps) and
// a topological order via Kahn's algorithm, the same shape the executor
// uses to discover which nodes become runnable once their dependencies
// finish.
func AnalyzeGraph(nodes []Node) *GraphInfo {
	n := len(nodes)
	gi := &GraphInfo{Dependents: make([][]int, n)}

	inDegree := make([]int, n)
	for i, node := range nodes {
		inDegree[i] = len(node.Deps)
		for _, dep := range node.Deps {
			gi.Dependents[dep] = append(gi.Dependents[dep], i)
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, n)
	remaining := append([]int(nil), inDegree...)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)
		for _, dep := range gi.Dependents[node] {
			remaining[dep]--
			if remaining[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	gi.TopoOrder = order
	return gi
}

// Ready returns every node index in nodes whose dependencies are all in
// done, among those not already in done themselves — the executor's
// readiness frontier for dispatching the next wave of concurrent work.
func (gi *GraphInfo) Ready(nodes []Node, done []bool) []int {
	var ready []int
	for i, node := range nodes {
		if done[i] {
			continue
		}
		ok := true
		for _, dep := range node.Deps {
			if !done[dep] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, i)
		}
	}
	return ready
}
