package resolver

import (
	"fmt"
	"slices"

	"bennypowers.dev/sass2ts/internal/collections"
	"bennypowers.dev/sass2ts/internal/schema"
)

// DependencyGraph represents a directed graph of variable dependencies
type DependencyGraph struct {
	// adjacency list: variable name -> variables it depends on
	dependencies map[string][]string
	// reverse lookup: variable name -> variables that depend on it
	dependents map[string][]string
	// emission order of every declared name
	nodes *collections.OrderedSet[string]
}

// BuildDependencyGraph builds a dependency graph from classified
// descriptors. Nodes are canonical names (see schema.CanonicalName), so
// $gap_large and $gap-large are the same node. References to names that
// were never declared carry no edge; they cannot constrain the order.
func BuildDependencyGraph(ds []schema.Descriptor) *DependencyGraph {
	graph := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        collections.NewOrderedSet[string](),
	}

	for _, d := range ds {
		graph.nodes.Add(schema.CanonicalName(d.Name))
	}

	for _, d := range ds {
		name := schema.CanonicalName(d.Name)
		deps := make([]string, len(d.Dependencies))
		for i, dep := range d.Dependencies {
			deps[i] = schema.CanonicalName(dep)
		}
		for _, dep := range collections.Unique(deps) {
			if !graph.nodes.Has(dep) {
				continue
			}
			graph.dependencies[name] = append(graph.dependencies[name], dep)
			graph.dependents[dep] = append(graph.dependents[dep], name)
		}
	}

	return graph
}

// GetDependencies returns the declared variables the given one depends on
func (g *DependencyGraph) GetDependencies(name string) []string {
	if deps, ok := g.dependencies[name]; ok {
		return deps
	}
	return []string{}
}

// GetDependents returns the variables that depend on the given one
func (g *DependencyGraph) GetDependents(name string) []string {
	if deps, ok := g.dependents[name]; ok {
		return deps
	}
	return []string{}
}

// HasCycle returns true if the graph contains a circular dependency
func (g *DependencyGraph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
// Nodes are visited in declaration order, so the reported path is stable.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := []string{}

	for _, node := range g.nodes.Members() {
		if cycle := g.findCycleDFS(node, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	return nil
}

// findCycleDFS finds a cycle and returns the path
func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		// node is on the path: recStack is only set right after appending it
		cycleStart := slices.Index(path, node)
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		return append(slices.Clone(path[cycleStart:]), node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns names in dependency order (dependencies first).
// Among names with no ordering constraint between them, the one declared
// first comes first. Returns an error if the graph contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, schema.NewCircularReferenceError("", cycle)
	}

	members := g.nodes.Members()
	pending := make(map[string]int, len(members))
	var ready []int
	for i, node := range members {
		pending[node] = len(g.dependencies[node])
		if pending[node] == 0 {
			ready = append(ready, i)
		}
	}

	result := make([]string, 0, len(members))
	for len(ready) > 0 {
		// ready stays sorted by declaration index
		node := members[ready[0]]
		ready = ready[1:]
		result = append(result, node)

		for _, dependent := range g.dependents[node] {
			pending[dependent]--
			if pending[dependent] == 0 {
				i := g.nodes.IndexOf(dependent)
				at, _ := slices.BinarySearch(ready, i)
				ready = slices.Insert(ready, at, i)
			}
		}
	}

	return result, nil
}

// Sort orders descriptors so every declared dependency precedes its
// dependents. Canonical descriptor names must be unique.
func Sort(ds []schema.Descriptor) ([]schema.Descriptor, error) {
	order, err := BuildDependencyGraph(ds).TopologicalSort()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]schema.Descriptor, len(ds))
	for _, d := range ds {
		byName[schema.CanonicalName(d.Name)] = d
	}

	sorted := make([]schema.Descriptor, 0, len(order))
	for _, name := range order {
		sorted = append(sorted, byName[name])
	}
	return sorted, nil
}
