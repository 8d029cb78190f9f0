package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a resolution error.
type Kind string

const (
	// Structural errors -- fatal, halt the pipeline.
	KindUnknownDependency Kind = "unknown_dependency"
	KindUnknownPlugin     Kind = "unknown_plugin"
	KindCyclicDependency  Kind = "cyclic_dependency"

	// Ordering and conflict errors -- collected exhaustively per stage.
	KindOrderViolation          Kind = "order_violation"
	KindDuplicateBaseProvider   Kind = "duplicate_base_provider"
	KindUnresolvedBaseReference Kind = "unresolved_base_reference"

	// Descriptor construction errors.
	KindMutualExclusivity Kind = "mutual_exclusivity"
	KindInvalidDescriptor Kind = "invalid_descriptor"

	KindUnknown Kind = "unknown"
)

// Fatal reports whether errors of this kind abort the pipeline at the
// stage that produced them.
func (k Kind) Fatal() bool {
	switch k {
	case KindUnknownDependency, KindUnknownPlugin, KindCyclicDependency:
		return true
	}
	return false
}

// Error is a structured resolution error.
type Error struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	inner   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.inner != nil {
		return e.inner.Error()
	}
	return string(e.Kind)
}

// Unwrap returns the inner error.
func (e *Error) Unwrap() error {
	return e.inner
}

// Is matches errors by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// WithDetail adds a detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithInner sets the inner error.
func (e *Error) WithInner(err error) *Error {
	e.inner = err
	return e
}

// Plugin returns the "plugin" detail, if present.
func (e *Error) Plugin() string {
	s, _ := e.Details["plugin"].(string)
	return s
}

// Class returns the "class" detail, if present.
func (e *Error) Class() string {
	s, _ := e.Details["class"].(string)
	return s
}

// New creates a new Error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// FromError converts a standard error to *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: KindUnknown, Message: err.Error(), inner: err}
}

// NewUnknownDependency reports a declared dependency with no loaded descriptor.
func NewUnknownDependency(plugin, missing string) *Error {
	return New(KindUnknownDependency,
		fmt.Sprintf("plugin %q depends on %q which is not loaded", plugin, missing)).
		WithDetail("plugin", plugin).
		WithDetail("dependency", missing)
}

// NewUnknownPlugin reports an application entry with no loaded descriptor.
func NewUnknownPlugin(application, plugin string) *Error {
	return New(KindUnknownPlugin,
		fmt.Sprintf("application %q references plugin %q which is not loaded", application, plugin)).
		WithDetail("application", application).
		WithDetail("plugin", plugin)
}

// NewCyclicDependency reports a dependency cycle. The path is ordered and
// closes on itself (first element repeated last).
func NewCyclicDependency(path []string) *Error {
	return New(KindCyclicDependency,
		fmt.Sprintf("dependency cycle: %s", strings.Join(path, " -> "))).
		WithDetail("cycle", path)
}

// NewOrderViolation reports a hand-authored order that places a plugin
// before one of its direct dependencies.
func NewOrderViolation(plugin, dependency string) *Error {
	return New(KindOrderViolation,
		fmt.Sprintf("plugin %q is listed before its dependency %q", plugin, dependency)).
		WithDetail("plugin", plugin).
		WithDetail("dependency", dependency)
}

// NewDuplicateBaseProvider reports two plugins both providing the same base class.
func NewDuplicateBaseProvider(class, pluginA, pluginB string) *Error {
	return New(KindDuplicateBaseProvider,
		fmt.Sprintf("class %q has two base providers: %q and %q", class, pluginA, pluginB)).
		WithDetail("class", class).
		WithDetail("plugin", pluginA).
		WithDetail("other", pluginB)
}

// NewUnresolvedBaseReference reports a mixin extending a class whose base
// provider is missing or unreachable through the plugin's dependencies.
func NewUnresolvedBaseReference(plugin, class string) *Error {
	return New(KindUnresolvedBaseReference,
		fmt.Sprintf("plugin %q extends %q but does not depend on its base provider", plugin, class)).
		WithDetail("plugin", plugin).
		WithDetail("class", class)
}

// NewMutualExclusivity reports a plugin that both provides and extends a class.
func NewMutualExclusivity(plugin, class string) *Error {
	return New(KindMutualExclusivity,
		fmt.Sprintf("plugin %q both provides and extends class %q", plugin, class)).
		WithDetail("plugin", plugin).
		WithDetail("class", class)
}

// NewInvalidDescriptor reports a malformed descriptor field.
func NewInvalidDescriptor(name, reason string) *Error {
	return New(KindInvalidDescriptor,
		fmt.Sprintf("invalid descriptor %q: %s", name, reason)).
		WithDetail("descriptor", name).
		WithDetail("reason", reason)
}

// Chain collects errors from an exhaustive validation stage.
type Chain struct {
	errors []*Error
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends an error to the chain. Nil errors are ignored.
func (c *Chain) Add(err *Error) *Chain {
	if err != nil {
		c.errors = append(c.errors, err)
	}
	return c
}

// HasErrors reports whether the chain holds any error.
func (c *Chain) HasErrors() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Chain) Len() int {
	return len(c.errors)
}

// Errors returns the collected errors in insertion order.
func (c *Chain) Errors() []*Error {
	return c.errors
}

// First returns the first error, or nil.
func (c *Chain) First() *Error {
	if len(c.errors) == 0 {
		return nil
	}
	return c.errors[0]
}

// HasKind reports whether the chain contains an error of the given kind.
func (c *Chain) HasKind(kind Kind) bool {
	for _, err := range c.errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// Filter returns a new chain holding only errors of the given kind.
func (c *Chain) Filter(kind Kind) *Chain {
	filtered := NewChain()
	for _, err := range c.errors {
		if err.Kind == kind {
			filtered.Add(err)
		}
	}
	return filtered
}

// Error joins the collected messages.
func (c *Chain) Error() string {
	if !c.HasErrors() {
		return ""
	}
	messages := make([]string, 0, len(c.errors))
	for _, err := range c.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, " | ")
}
