// Package validate enforces class-level conflict rules over a resolved
// precedence chain: one base provider per class, and every mixin must be
// able to reach its class's base provider through its own dependencies.
package validate

import (
	"github.com/statickit/composer/descriptor"
	"github.com/statickit/composer/errors"
	"github.com/statickit/composer/graph"
	"github.com/statickit/composer/resolver"
)

// Conflicts checks the plugin set of a precedence chain and returns every
// finding in one report. The validator never stops at the first conflict:
// a caller sees all composition problems in a single pass.
//
// Checks run after order resolution because unresolved-base-reference
// needs transitive reachability over the final graph.
func Conflicts(chain *resolver.PrecedenceChain, g *graph.Graph, registry *descriptor.Registry) *errors.Chain {
	report := errors.NewChain()

	// Exactly one base provider per class across the whole chain. The
	// chain is scanned lowest to highest, so the earlier provider is
	// always named first.
	providers := make(map[string]string)
	for _, name := range chain.Plugins() {
		p := registry.MustGet(name)
		for _, class := range p.Provides() {
			if prior, dup := providers[class]; dup {
				report.Add(errors.NewDuplicateBaseProvider(class, prior, name))
				continue
			}
			providers[class] = name
		}
	}

	// Every extended class needs a base provider somewhere in the chain,
	// reachable through the extending plugin's own dependency chain.
	for _, name := range chain.Plugins() {
		p := registry.MustGet(name)
		for _, class := range p.Extends() {
			provider, ok := providers[class]
			if !ok || !g.Reachable(name, provider) {
				report.Add(errors.NewUnresolvedBaseReference(name, class))
			}
		}
	}

	return report
}

// BaseProviders returns the class-to-provider mapping for a chain,
// ignoring duplicates beyond the first. Useful for callers that want the
// provider map after a clean Conflicts run.
func BaseProviders(chain *resolver.PrecedenceChain, registry *descriptor.Registry) map[string]string {
	providers := make(map[string]string)
	for _, name := range chain.Plugins() {
		p := registry.MustGet(name)
		for _, class := range p.Provides() {
			if _, dup := providers[class]; !dup {
				providers[class] = name
			}
		}
	}
	return providers
}
