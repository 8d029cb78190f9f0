package descriptor

import (
	"sort"

	"github.com/statickit/composer/errors"
)

// Plugin is an immutable static-plugin descriptor. Construct it with
// NewPlugin; a zero Plugin is not valid.
type Plugin struct {
	name         string
	dependencies []string
	provides     map[string]struct{}
	extends      map[string]struct{}
}

// NewPlugin builds a validated Plugin descriptor.
//
// dependencies are ordered lowest to highest precedence, as declared by the
// plugin author. provides lists class names the plugin defines as a base;
// extends lists class names it contributes mixins to. The two sets must be
// disjoint: a plugin cannot both define and extend the same class.
func NewPlugin(name string, dependencies, provides, extends []string) (*Plugin, error) {
	if name == "" {
		return nil, errors.NewInvalidDescriptor(name, "plugin name is empty")
	}

	seen := make(map[string]struct{}, len(dependencies))
	for _, dep := range dependencies {
		if dep == "" {
			return nil, errors.NewInvalidDescriptor(name, "empty dependency name")
		}
		if dep == name {
			return nil, errors.NewInvalidDescriptor(name, "plugin depends on itself")
		}
		if _, dup := seen[dep]; dup {
			return nil, errors.NewInvalidDescriptor(name, "duplicate dependency "+dep)
		}
		seen[dep] = struct{}{}
	}

	p := &Plugin{
		name:         name,
		dependencies: append([]string(nil), dependencies...),
		provides:     make(map[string]struct{}, len(provides)),
		extends:      make(map[string]struct{}, len(extends)),
	}
	for _, class := range provides {
		if class == "" {
			return nil, errors.NewInvalidDescriptor(name, "empty provided class name")
		}
		p.provides[class] = struct{}{}
	}
	for _, class := range extends {
		if class == "" {
			return nil, errors.NewInvalidDescriptor(name, "empty extended class name")
		}
		if _, both := p.provides[class]; both {
			return nil, errors.NewMutualExclusivity(name, class)
		}
		p.extends[class] = struct{}{}
	}

	return p, nil
}

// Name returns the process-unique plugin name.
func (p *Plugin) Name() string { return p.name }

// Dependencies returns the declared dependency names, lowest to highest
// precedence. The returned slice is a copy.
func (p *Plugin) Dependencies() []string {
	return append([]string(nil), p.dependencies...)
}

// Provides returns the class names this plugin defines as a base, sorted.
func (p *Plugin) Provides() []string { return sortedKeys(p.provides) }

// Extends returns the class names this plugin extends as a mixin, sorted.
func (p *Plugin) Extends() []string { return sortedKeys(p.extends) }

// ProvidesClass reports whether the plugin is the base provider of class.
func (p *Plugin) ProvidesClass(class string) bool {
	_, ok := p.provides[class]
	return ok
}

// ExtendsClass reports whether the plugin contributes a mixin to class.
func (p *Plugin) ExtendsClass(class string) bool {
	_, ok := p.extends[class]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Application is an immutable application descriptor: a named, ordered
// selection of plugins, lowest to highest intended precedence.
type Application struct {
	name    string
	plugins []string
}

// NewApplication builds a validated Application descriptor. The plugin list
// must not contain duplicates or empty names; whether every name is loaded
// is checked later, against a Registry.
func NewApplication(name string, plugins []string) (*Application, error) {
	if name == "" {
		return nil, errors.NewInvalidDescriptor(name, "application name is empty")
	}
	seen := make(map[string]struct{}, len(plugins))
	for _, plugin := range plugins {
		if plugin == "" {
			return nil, errors.NewInvalidDescriptor(name, "empty plugin name")
		}
		if _, dup := seen[plugin]; dup {
			return nil, errors.NewInvalidDescriptor(name, "duplicate plugin "+plugin)
		}
		seen[plugin] = struct{}{}
	}
	return &Application{
		name:    name,
		plugins: append([]string(nil), plugins...),
	}, nil
}

// Name returns the application name.
func (a *Application) Name() string { return a.name }

// Plugins returns the plugin names, lowest to highest intended precedence.
// The returned slice is a copy.
func (a *Application) Plugins() []string {
	return append([]string(nil), a.plugins...)
}

// Contains reports whether the application lists the plugin.
func (a *Application) Contains(plugin string) bool {
	for _, p := range a.plugins {
		if p == plugin {
			return true
		}
	}
	return false
}
