// Package compose turns a validated precedence chain into per-class
// composition plans: the ordered contributor lists a code generator renders
// into extends/implements clauses.
package compose

import (
	"sort"

	"github.com/statickit/composer/descriptor"
	"github.com/statickit/composer/naming"
	"github.com/statickit/composer/resolver"
)

// Plan is the composition plan for a single class: every plugin that
// provides or extends it, ordered highest precedence first with the base
// provider last. Plans are derived on demand and cheap to recompute; the
// engine does not cache them.
type Plan struct {
	class        string
	contributors []string
	base         string
}

// Emit computes the composition plan for one class. Contributors are
// collected from the chain lowest to highest and then reversed, so the
// most specific override comes first and the base provider (if any) last.
// A class no plugin touches yields an empty plan, not an error.
func Emit(chain *resolver.PrecedenceChain, registry *descriptor.Registry, class string) Plan {
	plan := Plan{class: class}

	ascending := make([]string, 0, 4)
	for _, name := range chain.Plugins() {
		p := registry.MustGet(name)
		if p.ProvidesClass(class) {
			plan.base = name
			ascending = append(ascending, name)
			continue
		}
		if p.ExtendsClass(class) {
			ascending = append(ascending, name)
		}
	}

	plan.contributors = make([]string, 0, len(ascending))
	for i := len(ascending) - 1; i >= 0; i-- {
		plan.contributors = append(plan.contributors, ascending[i])
	}
	return plan
}

// EmitAll computes plans for every class the chain's plugins provide or
// extend, keyed by class name.
func EmitAll(chain *resolver.PrecedenceChain, registry *descriptor.Registry) map[string]Plan {
	classes := make(map[string]struct{})
	for _, name := range chain.Plugins() {
		p := registry.MustGet(name)
		for _, class := range p.Provides() {
			classes[class] = struct{}{}
		}
		for _, class := range p.Extends() {
			classes[class] = struct{}{}
		}
	}

	plans := make(map[string]Plan, len(classes))
	for class := range classes {
		plans[class] = Emit(chain, registry, class)
	}
	return plans
}

// Class returns the target class name.
func (p Plan) Class() string { return p.class }

// Contributors returns contributing plugin names, highest precedence
// first, base provider last. Empty when no plugin touches the class.
func (p Plan) Contributors() []string {
	return append([]string(nil), p.contributors...)
}

// Reversed returns the contributors lowest precedence first, base provider
// first. Some generators want the foundational entry leading.
func (p Plan) Reversed() []string {
	out := make([]string, 0, len(p.contributors))
	for i := len(p.contributors) - 1; i >= 0; i-- {
		out = append(out, p.contributors[i])
	}
	return out
}

// Base returns the base provider plugin, or "" when the class has none in
// this plugin set.
func (p Plan) Base() string { return p.base }

// Mixins returns the mixin contributors, highest precedence first.
func (p Plan) Mixins() []string {
	mixins := make([]string, 0, len(p.contributors))
	for _, name := range p.contributors {
		if name != p.base {
			mixins = append(mixins, name)
		}
	}
	return mixins
}

// Empty reports whether no plugin in the set touches the class.
func (p Plan) Empty() bool { return len(p.contributors) == 0 }

// Identifiers renders the contributor list as declaration identifiers
// following the static-plugin naming conventions: mixins as
// "<Plugin><Class>Mixin", the base as the bare class name.
func (p Plan) Identifiers() []string {
	ids := make([]string, 0, len(p.contributors))
	for _, name := range p.contributors {
		if name == p.base {
			ids = append(ids, p.class)
			continue
		}
		ids = append(ids, naming.MixinName(name, p.class))
	}
	return ids
}

// Classes returns the sorted class names of a plan set.
func Classes(plans map[string]Plan) []string {
	out := make([]string, 0, len(plans))
	for class := range plans {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}
