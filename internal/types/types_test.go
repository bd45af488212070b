package types

import "testing"

func TestFileTypeTrackerImmutable(t *testing.T) {
	t1 := NewFileTypeTracker()
	t2 := t1.With("x", "pkg#Widget", Position{Row: 1})
	if _, ok := t1.LookupAt("x", Position{Row: 5}); ok {
		t.Error("original tracker must not observe the new binding")
	}
	if cls, ok := t2.LookupAt("x", Position{Row: 5}); !ok || cls != "pkg#Widget" {
		t.Errorf("t2.LookupAt = %q, %v, want pkg#Widget, true", cls, ok)
	}
}

func TestFileTypeTrackerReassignmentSensitive(t *testing.T) {
	tr := NewFileTypeTracker().
		With("x", "pkg#Widget", Position{Row: 1}).
		With("x", "pkg#Gadget", Position{Row: 10})

	early, ok := tr.LookupAt("x", Position{Row: 5})
	if !ok || early != "pkg#Widget" {
		t.Errorf("lookup before reassignment = %q, %v, want pkg#Widget, true", early, ok)
	}
	late, ok := tr.LookupAt("x", Position{Row: 20})
	if !ok || late != "pkg#Gadget" {
		t.Errorf("lookup after reassignment = %q, %v, want pkg#Gadget, true", late, ok)
	}
}

func TestFileTypeTrackerLookupBeforeAnyBinding(t *testing.T) {
	tr := NewFileTypeTracker().With("x", "pkg#Widget", Position{Row: 10})
	if _, ok := tr.LookupAt("x", Position{Row: 1}); ok {
		t.Error("expected no binding before the assignment's position")
	}
}

func TestProjectTypeRegistryImmutable(t *testing.T) {
	r1 := NewProjectTypeRegistry()
	r2 := r1.With(ClassInfo{SymbolID: "pkg#Widget", Name: "Widget", FilePath: "pkg/widget.go"})

	if _, ok := r1.Get("pkg#Widget"); ok {
		t.Error("original registry must not observe the new entry")
	}
	if info, ok := r2.Get("pkg#Widget"); !ok || info.Name != "Widget" {
		t.Errorf("r2.Get = %v, %v, want Widget, true", info, ok)
	}
}

func TestProjectTypeRegistryByName(t *testing.T) {
	r := NewProjectTypeRegistry().
		With(ClassInfo{SymbolID: "a#Widget", Name: "Widget", FilePath: "a.go"}).
		With(ClassInfo{SymbolID: "b#Widget", Name: "Widget", FilePath: "b.go"})

	matches := r.ByName("Widget")
	if len(matches) != 2 {
		t.Errorf("ByName(Widget) returned %d entries, want 2", len(matches))
	}
}

func TestProjectTypeRegistryMerge(t *testing.T) {
	a := NewProjectTypeRegistry().With(ClassInfo{SymbolID: "a#Widget", Name: "Widget"})
	b := NewProjectTypeRegistry().With(ClassInfo{SymbolID: "b#Gadget", Name: "Gadget"})

	merged := a.Merge(b)
	if _, ok := merged.Get("a#Widget"); !ok {
		t.Error("merged registry missing entry from a")
	}
	if _, ok := merged.Get("b#Gadget"); !ok {
		t.Error("merged registry missing entry from b")
	}
	if _, ok := a.Get("b#Gadget"); ok {
		t.Error("merging must not mutate the receiver")
	}
}
