package keel

// depGraph tracks declared dependencies between bindings so Build can
// reject statically-declared cycles before the engine ever runs.
// Declared dependencies are advisory: runtime cycle detection in the
// resolution context remains authoritative for factories that resolve
// more than they declare.
type depGraph struct {
	nodes map[Ident]*depNode
	order []Ident // preserve registration order
}

type depNode struct {
	ident Ident
	deps  []Ident
}

func newDepGraph() *depGraph {
	return &depGraph{
		nodes: make(map[Ident]*depNode),
	}
}

// addNode records a binding and its declared dependencies. A second
// registration for the same identifier merges its dependencies.
func (g *depGraph) addNode(id Ident, deps []Ident) {
	if node, ok := g.nodes[id]; ok {
		node.deps = append(node.deps, deps...)

		return
	}

	g.nodes[id] = &depNode{ident: id, deps: deps}
	g.order = append(g.order, id)
}

// topoOrder returns identifiers in dependency order, registration order
// preserved for independent nodes. Returns an error carrying the cycle
// path if the declared graph is cyclic.
func (g *depGraph) topoOrder() ([]Ident, error) {
	visited := make(map[Ident]bool, len(g.nodes))
	visiting := make(map[Ident]bool, len(g.nodes))
	result := make([]Ident, 0, len(g.nodes))

	var path []Ident

	for _, id := range g.order {
		if err := g.visit(id, visited, visiting, &path, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// validate checks the declared graph for cycles.
func (g *depGraph) validate() error {
	_, err := g.topoOrder()

	return err
}

func (g *depGraph) visit(id Ident, visited, visiting map[Ident]bool, path *[]Ident, result *[]Ident) error {
	if visited[id] {
		return nil
	}

	if visiting[id] {
		return ErrCircularDependency(g.cycleFrom(*path, id), "")
	}

	node := g.nodes[id]
	if node == nil {
		// Declared dependency with no binding of its own; the runtime
		// NotRegistered check owns that failure.
		return nil
	}

	visiting[id] = true
	*path = append(*path, id)

	for _, dep := range node.deps {
		if err := g.visit(dep, visited, visiting, path, result); err != nil {
			return err
		}
	}

	*path = (*path)[:len(*path)-1]
	visiting[id] = false
	visited[id] = true
	*result = append(*result, id)

	return nil
}

// cycleFrom trims the DFS path to the segment forming the cycle and
// closes the loop with the revisited identifier.
func (g *depGraph) cycleFrom(path []Ident, id Ident) []string {
	start := 0
	for i, on := range path {
		if on == id {
			start = i

			break
		}
	}

	cycle := make([]string, 0, len(path)-start+1)
	for _, on := range path[start:] {
		cycle = append(cycle, on.String())
	}

	return append(cycle, id.String())
}
