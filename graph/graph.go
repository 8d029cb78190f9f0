package graph

import (
	"github.com/statickit/composer/descriptor"
	"github.com/statickit/composer/errors"
)

// Graph is a dependency graph over plugin descriptors: plugin name to its
// direct dependency names, in declaration order. It is derived per
// resolution run and never mutated after Build returns.
type Graph struct {
	adjacency map[string][]string
	order     []string
}

// Build constructs the dependency graph for an application: the
// application's plugins plus every plugin reachable through declared
// dependencies. Traversal is breadth-first from the application list, so
// the graph's node order is reproducible: application order first, then
// dependencies in declaration order.
//
// An application entry with no loaded descriptor yields a fatal
// unknown_plugin error; a declared dependency with no loaded descriptor a
// fatal unknown_dependency error.
func Build(registry *descriptor.Registry, app *descriptor.Application) (*Graph, error) {
	g := &Graph{adjacency: make(map[string][]string)}

	queue := make([]string, 0, len(app.Plugins()))
	for _, name := range app.Plugins() {
		if _, ok := registry.Get(name); !ok {
			return nil, errors.NewUnknownPlugin(app.Name(), name)
		}
		queue = append(queue, name)
	}

	seen := make(map[string]struct{}, len(queue))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := seen[name]; done {
			continue
		}
		seen[name] = struct{}{}

		p, _ := registry.Get(name)
		deps := p.Dependencies()
		for _, dep := range deps {
			if _, ok := registry.Get(dep); !ok {
				return nil, errors.NewUnknownDependency(name, dep)
			}
			queue = append(queue, dep)
		}

		g.adjacency[name] = deps
		g.order = append(g.order, name)
	}

	return g, nil
}

// Nodes returns all plugin names in traversal order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// Dependencies returns the direct dependencies of a plugin, in declaration
// order. The returned slice must not be mutated.
func (g *Graph) Dependencies(name string) []string {
	return g.adjacency[name]
}

// Contains reports whether the graph holds the plugin.
func (g *Graph) Contains(name string) bool {
	_, ok := g.adjacency[name]
	return ok
}

// Len returns the number of plugins in the graph.
func (g *Graph) Len() int {
	return len(g.adjacency)
}

// Reachable reports whether target is a direct or transitive dependency
// of from.
func (g *Graph) Reachable(from, target string) bool {
	if from == target {
		return false
	}
	visited := make(map[string]struct{})
	stack := append([]string(nil), g.adjacency[from]...)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if name == target {
			return true
		}
		if _, done := visited[name]; done {
			continue
		}
		visited[name] = struct{}{}
		stack = append(stack, g.adjacency[name]...)
	}
	return false
}
