package resolver

import (
	"github.com/statickit/composer/descriptor"
	"github.com/statickit/composer/errors"
	"github.com/statickit/composer/graph"
)

// CheckOrder verifies a hand-authored application order against the
// dependency graph: every direct dependency of the plugin at index i must
// appear at some index < i. Violations are collected exhaustively, one per
// offending plugin, scanning the list left to right; for each offender the
// first violating dependency in declaration order is named.
//
// The order is never silently repaired. The convention requires explicit
// author intent about precedence, so a broken list is reported, not fixed.
func CheckOrder(g *graph.Graph, app *descriptor.Application) *errors.Chain {
	report := errors.NewChain()

	position := make(map[string]int)
	for i, name := range app.Plugins() {
		position[name] = i
	}

	for i, name := range app.Plugins() {
		for _, dep := range g.Dependencies(name) {
			at, listed := position[dep]
			if !listed || at >= i {
				report.Add(errors.NewOrderViolation(name, dep))
				break
			}
		}
	}

	return report
}

// Chain wraps a legality-checked application order as a PrecedenceChain.
// Callers must run CheckOrder first; Chain performs no validation.
func Chain(app *descriptor.Application) *PrecedenceChain {
	return newChain(app.Plugins())
}

// Linearize derives a canonical precedence order for the graph, used when
// an application wants the engine to compute order instead of hand-
// authoring it. When several plugins are simultaneously eligible (all
// dependencies already placed), the one registered earliest wins, so the
// same descriptor set always yields the same chain.
func Linearize(g *graph.Graph, registry *descriptor.Registry) *PrecedenceChain {
	nodes := g.Nodes()

	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	for _, name := range nodes {
		deps := g.Dependencies(name)
		inDegree[name] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	eligible := make([]string, 0, len(nodes))
	for _, name := range nodes {
		if inDegree[name] == 0 {
			eligible = append(eligible, name)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(eligible) > 0 {
		// Pick the eligible plugin declared earliest.
		best := 0
		for i := 1; i < len(eligible); i++ {
			if registry.DeclarationIndex(eligible[i]) < registry.DeclarationIndex(eligible[best]) {
				best = i
			}
		}
		current := eligible[best]
		eligible = append(eligible[:best], eligible[best+1:]...)
		order = append(order, current)

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				eligible = append(eligible, dependent)
			}
		}
	}

	// The graph is validated acyclic before linearization, so every node
	// is placed.
	return newChain(order)
}
