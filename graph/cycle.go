package graph

import (
	"github.com/statickit/composer/errors"
)

// DetectCycle verifies the graph is acyclic. If a cycle exists it returns
// a cyclic_dependency error whose path is the ordered sequence of plugin
// names forming the cycle, closed on itself (first element repeated last).
//
// When multiple cycles exist the first one encountered is reported, using
// the graph's stable node order for roots and dependency declaration order
// within each node, so identical input always yields the identical report.
func DetectCycle(g *Graph) *errors.Error {
	visited := make(map[string]struct{}, g.Len())
	onStack := make(map[string]struct{}, g.Len())
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		onStack[name] = struct{}{}
		stack = append(stack, name)

		for _, dep := range g.Dependencies(name) {
			if _, active := onStack[dep]; active {
				// Cycle: the stack slice from dep to the current node,
				// closed by repeating dep.
				start := 0
				for i, n := range stack {
					if n == dep {
						start = i
						break
					}
				}
				path := append([]string(nil), stack[start:]...)
				return append(path, dep)
			}
			if _, done := visited[dep]; done {
				continue
			}
			if path := visit(dep); path != nil {
				return path
			}
		}

		delete(onStack, name)
		stack = stack[:len(stack)-1]
		visited[name] = struct{}{}
		return nil
	}

	for _, name := range g.Nodes() {
		if _, done := visited[name]; done {
			continue
		}
		if path := visit(name); path != nil {
			return errors.NewCyclicDependency(path)
		}
	}
	return nil
}
