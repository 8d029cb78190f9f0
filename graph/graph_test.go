package graph

import (
	"reflect"
	"testing"

	"github.com/statickit/composer/descriptor"
	"github.com/statickit/composer/errors"
)

func buildRegistry(t *testing.T, plugins map[string][]string, order []string) *descriptor.Registry {
	t.Helper()
	r := descriptor.NewRegistry()
	for _, name := range order {
		p, err := descriptor.NewPlugin(name, plugins[name], nil, nil)
		if err != nil {
			t.Fatalf("NewPlugin(%s) failed: %v", name, err)
		}
		if err := r.Register(p); err != nil {
			t.Fatalf("Register(%s) failed: %v", name, err)
		}
	}
	return r
}

func mustApp(t *testing.T, name string, plugins []string) *descriptor.Application {
	t.Helper()
	app, err := descriptor.NewApplication(name, plugins)
	if err != nil {
		t.Fatalf("NewApplication failed: %v", err)
	}
	return app
}

func TestBuild(t *testing.T) {
	r := buildRegistry(t, map[string][]string{
		"with_users": nil,
		"with_dob":   {"with_users"},
		"with_age":   {"with_users", "with_dob"},
	}, []string{"with_users", "with_dob", "with_age"})

	app := mustApp(t, "crm", []string{"with_users", "with_dob", "with_age"})
	g, err := Build(r, app)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if got := g.Dependencies("with_age"); !reflect.DeepEqual(got, []string{"with_users", "with_dob"}) {
		t.Errorf("Dependencies(with_age) = %v", got)
	}
	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"with_users", "with_dob", "with_age"}) {
		t.Errorf("Nodes() = %v, want application order", got)
	}
}

func TestBuild_TransitiveClosure(t *testing.T) {
	r := buildRegistry(t, map[string][]string{
		"base":  nil,
		"mid":   {"base"},
		"leaf":  {"mid"},
		"other": nil,
	}, []string{"base", "mid", "leaf", "other"})

	// Application lists only the leaf; the closure pulls in mid and base
	// but not the unrelated plugin.
	g, err := Build(r, mustApp(t, "app", []string{"leaf"}))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !g.Contains("base") || !g.Contains("mid") {
		t.Error("transitive dependencies missing from graph")
	}
	if g.Contains("other") {
		t.Error("unrelated plugin pulled into graph")
	}
	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"leaf", "mid", "base"}) {
		t.Errorf("Nodes() = %v, want discovery order [leaf mid base]", got)
	}
}

func TestBuild_UnknownPlugin(t *testing.T) {
	r := buildRegistry(t, map[string][]string{"a": nil}, []string{"a"})
	_, err := Build(r, mustApp(t, "app", []string{"a", "ghost"}))
	if err == nil {
		t.Fatal("Build succeeded, want unknown_plugin")
	}
	e := errors.FromError(err)
	if e.Kind != errors.KindUnknownPlugin {
		t.Errorf("kind = %v, want %v", e.Kind, errors.KindUnknownPlugin)
	}
	if e.Plugin() != "ghost" {
		t.Errorf("plugin detail = %q, want ghost", e.Plugin())
	}
}

func TestBuild_UnknownDependency(t *testing.T) {
	r := descriptor.NewRegistry()
	p, err := descriptor.NewPlugin("a", []string{"missing"}, nil, nil)
	if err != nil {
		t.Fatalf("NewPlugin failed: %v", err)
	}
	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err = Build(r, mustApp(t, "app", []string{"a"}))
	if err == nil {
		t.Fatal("Build succeeded, want unknown_dependency")
	}
	e := errors.FromError(err)
	if e.Kind != errors.KindUnknownDependency {
		t.Errorf("kind = %v, want %v", e.Kind, errors.KindUnknownDependency)
	}
	if e.Plugin() != "a" || e.Details["dependency"] != "missing" {
		t.Errorf("details = %v, want plugin=a dependency=missing", e.Details)
	}
}

func TestReachable(t *testing.T) {
	r := buildRegistry(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"b"},
		"d": nil,
	}, []string{"a", "b", "c", "d"})
	g, err := Build(r, mustApp(t, "app", []string{"a", "b", "c", "d"}))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !g.Reachable("c", "a") {
		t.Error("Reachable(c, a) = false, want true (transitive)")
	}
	if !g.Reachable("b", "a") {
		t.Error("Reachable(b, a) = false, want true (direct)")
	}
	if g.Reachable("a", "c") {
		t.Error("Reachable(a, c) = true, want false (wrong direction)")
	}
	if g.Reachable("d", "a") {
		t.Error("Reachable(d, a) = true, want false (disconnected)")
	}
	if g.Reachable("a", "a") {
		t.Error("Reachable(a, a) = true, want false")
	}
}

func TestDetectCycle_Acyclic(t *testing.T) {
	r := buildRegistry(t, map[string][]string{
		"with_users": nil,
		"with_dob":   {"with_users"},
		"with_age":   {"with_users", "with_dob"},
	}, []string{"with_users", "with_dob", "with_age"})
	g, err := Build(r, mustApp(t, "crm", []string{"with_users", "with_dob", "with_age"}))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if cycleErr := DetectCycle(g); cycleErr != nil {
		t.Errorf("DetectCycle = %v, want nil", cycleErr)
	}
}

func TestDetectCycle_TwoNode(t *testing.T) {
	r := buildRegistry(t, map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}, []string{"A", "B"})
	g, err := Build(r, mustApp(t, "app", []string{"A", "B"}))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cycleErr := DetectCycle(g)
	if cycleErr == nil {
		t.Fatal("DetectCycle = nil, want cyclic_dependency")
	}
	if cycleErr.Kind != errors.KindCyclicDependency {
		t.Errorf("kind = %v", cycleErr.Kind)
	}
	path, _ := cycleErr.Details["cycle"].([]string)
	if !reflect.DeepEqual(path, []string{"A", "B", "A"}) {
		t.Errorf("cycle path = %v, want [A B A]", path)
	}
}

func TestDetectCycle_SelfThroughChain(t *testing.T) {
	r := buildRegistry(t, map[string][]string{
		"a": nil,
		"b": {"a", "d"},
		"c": {"b"},
		"d": {"c"},
	}, []string{"a", "b", "c", "d"})
	g, err := Build(r, mustApp(t, "app", []string{"a", "b", "c", "d"}))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cycleErr := DetectCycle(g)
	if cycleErr == nil {
		t.Fatal("DetectCycle = nil, want cyclic_dependency")
	}
	path, _ := cycleErr.Details["cycle"].([]string)
	if len(path) < 3 || path[0] != path[len(path)-1] {
		t.Fatalf("cycle path %v does not close on itself", path)
	}
	// The reported path must be a real cycle in the graph.
	for i := 0; i+1 < len(path); i++ {
		found := false
		for _, dep := range g.Dependencies(path[i]) {
			if dep == path[i+1] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("edge %s -> %s in reported cycle is not in the graph", path[i], path[i+1])
		}
	}
}

func TestDetectCycle_Deterministic(t *testing.T) {
	deps := map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"c": {"d"},
		"d": {"c"},
	}
	order := []string{"a", "b", "c", "d"}

	var first []string
	for i := 0; i < 5; i++ {
		r := buildRegistry(t, deps, order)
		g, err := Build(r, mustApp(t, "app", order))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		cycleErr := DetectCycle(g)
		if cycleErr == nil {
			t.Fatal("DetectCycle = nil")
		}
		path, _ := cycleErr.Details["cycle"].([]string)
		if first == nil {
			first = path
			// Roots iterate in application order, so the a/b cycle wins.
			if path[0] != "a" {
				t.Errorf("first reported cycle starts at %q, want a", path[0])
			}
			continue
		}
		if !reflect.DeepEqual(path, first) {
			t.Errorf("run %d reported %v, first run reported %v", i, path, first)
		}
	}
}
