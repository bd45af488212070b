package project

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/scopeforge/codegraph/internal/callgraph"
	"github.com/scopeforge/codegraph/internal/scopegraph"
)

func mustAdd(t *testing.T, p *Project, path, text string) {
	t.Helper()
	if err := p.AddOrUpdateFile(path, []byte(text)); err != nil {
		t.Fatalf("AddOrUpdateFile(%s): %v", path, err)
	}
}

// TestScenarioA_IntraFileCall is spec.md §8 Scenario A, verified literally:
// nodes.keys ⊇ {"test#helper", "test#main"}; exactly one edge
// {from:"test#main", to:"test#helper", call_type:"direct"};
// top_level_nodes = ["test#main"].
func TestScenarioA_IntraFileCall(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "test.ts", `function helper() { return 42; }
function main() { const r = helper(); return r; }
`)

	cg := p.ExtractCallGraph()

	if _, ok := cg.Nodes["test#helper"]; !ok {
		t.Errorf("nodes.keys missing test#helper, got %v", nodeKeys(cg))
	}
	if _, ok := cg.Nodes["test#main"]; !ok {
		t.Errorf("nodes.keys missing test#main, got %v", nodeKeys(cg))
	}

	var matching []callgraph.CallGraphEdge
	for _, e := range cg.Edges {
		if e.From == "test#main" && e.To == "test#helper" {
			matching = append(matching, e)
		}
	}
	if len(matching) != 1 {
		t.Fatalf("expected exactly one test#main -> test#helper edge, got %d: %v", len(matching), matching)
	}
	if matching[0].Kind != callgraph.DirectCall {
		t.Errorf("edge call_type = %q, want %q", matching[0].Kind, callgraph.DirectCall)
	}

	if len(cg.TopLevelNodes) != 1 || cg.TopLevelNodes[0] != "test#main" {
		t.Errorf("top_level_nodes = %v, want [test#main]", cg.TopLevelNodes)
	}
}

// TestScenarioC_CrossFileImport is spec.md §8 Scenario C, verified
// literally: nodes include "lib#shared" and "main#local"; an edge
// {from:"main#local", to:"lib#shared"}; "lib#shared" is exported;
// top_level_nodes contains "main#local" but not "lib#shared".
func TestScenarioC_CrossFileImport(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "lib.ts", `export function shared(){}
`)
	mustAdd(t, p, "main.ts", `import {shared} from './lib';
function local(){ shared(); }
`)

	cg := p.ExtractCallGraph()

	if _, ok := cg.Nodes["lib#shared"]; !ok {
		t.Errorf("nodes.keys missing lib#shared, got %v", nodeKeys(cg))
	}
	if _, ok := cg.Nodes["main#local"]; !ok {
		t.Errorf("nodes.keys missing main#local, got %v", nodeKeys(cg))
	}

	foundEdge := false
	for _, e := range cg.Edges {
		if e.From == "main#local" && e.To == "lib#shared" {
			foundEdge = true
		}
	}
	if !foundEdge {
		t.Errorf("expected edge main#local -> lib#shared, got %v", cg.Edges)
	}

	var sharedDef scopegraph.Node
	for _, d := range p.GetAllDefinitions() {
		if d.SymbolID == "lib#shared" {
			sharedDef = d
		}
	}
	if !sharedDef.IsExported {
		t.Errorf("expected lib#shared to be exported, got %+v", sharedDef)
	}

	topLevel := map[string]bool{}
	for _, n := range cg.TopLevelNodes {
		topLevel[n] = true
	}
	if !topLevel["main#local"] {
		t.Errorf("expected main#local among top_level_nodes, got %v", cg.TopLevelNodes)
	}
	if topLevel["lib#shared"] {
		t.Errorf("expected lib#shared NOT among top_level_nodes, got %v", cg.TopLevelNodes)
	}
}

// TestScenarioD_ModuleLevelCall is spec.md §8 Scenario D, verified
// literally: an edge whose from = "app#<module>" and to = "app#setup";
// setup is NOT in top_level_nodes.
func TestScenarioD_ModuleLevelCall(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "app.ts", `function setup(){}
setup();
`)
	cg := p.ExtractCallGraph()

	foundEdge := false
	for _, e := range cg.Edges {
		if e.From == "app#<module>" && e.To == "app#setup" {
			foundEdge = true
		}
	}
	if !foundEdge {
		t.Errorf("expected edge app#<module> -> app#setup, got %v", cg.Edges)
	}

	for _, n := range cg.TopLevelNodes {
		if n == "app#setup" {
			t.Errorf("expected app#setup NOT among top_level_nodes, got %v", cg.TopLevelNodes)
		}
	}
}

func nodeKeys(cg *callgraph.CallGraph) []string {
	keys := make([]string, 0, len(cg.Nodes))
	for k := range cg.Nodes {
		keys = append(keys, k)
	}
	return keys
}

func TestAddOrUpdateFileBuildsScopeGraph(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "a.go", "package a\nfunc F() {}\n")

	g, ok := p.GetScopeGraph("a.go")
	if !ok {
		t.Fatal("expected a scope graph for a.go")
	}
	found := false
	for _, d := range g.Definitions() {
		if d.Name == "F" {
			found = true
		}
	}
	if !found {
		t.Error("expected definition F in a.go's scope graph")
	}
}

func TestUpdateFileRangeRoundTrips(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "a.go", "package a\nfunc F() {}\n")

	// Replace the "F" at byte 15 (row 1, column 5) with "G".
	newText := "package a\nfunc G() {}\n"
	edit := tree_sitter.InputEdit{
		StartByte:      15,
		OldEndByte:     16,
		NewEndByte:     16,
		StartPosition:  tree_sitter.Point{Row: 1, Column: 5},
		OldEndPosition: tree_sitter.Point{Row: 1, Column: 6},
		NewEndPosition: tree_sitter.Point{Row: 1, Column: 6},
	}
	if err := p.UpdateFileRange("a.go", edit, []byte(newText)); err != nil {
		t.Fatalf("UpdateFileRange: %v", err)
	}
	g, ok := p.GetScopeGraph("a.go")
	if !ok {
		t.Fatal("expected scope graph after update")
	}
	var names []string
	for _, d := range g.Definitions() {
		names = append(names, d.Name)
	}
	foundG := false
	for _, n := range names {
		if n == "G" {
			foundG = true
		}
	}
	if !foundG {
		t.Errorf("expected G among definitions after update, got %v", names)
	}
}

func TestRemoveFileDropsScopeGraph(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "a.go", "package a\nfunc F() {}\n")
	p.RemoveFile("a.go")

	if _, ok := p.GetScopeGraph("a.go"); ok {
		t.Error("expected no scope graph after RemoveFile")
	}
}

func TestGoToDefinitionWithinFile(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "a.go", `package a

func Add(x int) int { return x }
func main() { Add(1) }
`)
	g, _ := p.GetScopeGraph("a.go")
	var callRef scopegraph.Node
	for _, ref := range g.Nodes(scopegraph.ReferenceNode) {
		if ref.Name == "Add" {
			callRef = ref
		}
	}
	if callRef.Name == "" {
		t.Fatal("expected a reference named Add")
	}
	def, ok := p.GoToDefinition("a.go", callRef.Range.Start)
	if !ok || def.Name != "Add" {
		t.Errorf("GoToDefinition = %v, %v, want Add, true", def, ok)
	}
}

func TestInheritanceGoEmbedding(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "shapes.go", `package shapes

type Base struct{}

type Derived struct {
	Base
}
`)
	defs := p.GetAllDefinitions()
	var derivedSym, baseSym string
	for _, d := range defs {
		switch d.Name {
		case "Derived":
			derivedSym = d.SymbolID
		case "Base":
			baseSym = d.SymbolID
		}
	}
	if derivedSym == "" || baseSym == "" {
		t.Fatal("expected Base and Derived among definitions")
	}

	rel := p.GetClassRelationships(derivedSym)
	if rel.Parent == nil || rel.Parent.SymbolID != baseSym {
		t.Errorf("expected Derived's parent to resolve to Base, got %v", rel.Parent)
	}

	if !p.IsSubclassOf(derivedSym, baseSym) {
		t.Error("expected Derived to be a subclass of Base")
	}

	subs := p.FindSubclasses(baseSym)
	found := false
	for _, s := range subs {
		if s.SymbolID == derivedSym {
			found = true
		}
	}
	if !found {
		t.Error("expected FindSubclasses(Base) to include Derived")
	}
}

func TestGetCallGraphMaxDepth(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "chain.go", `package chain

func l0() { l1() }
func l1() { l2() }
func l2() { l3() }
func l3() {}
`)

	cg := p.ExtractCallGraph()
	var l0Sym string
	for sym, n := range cg.Nodes {
		if n.Name == "l0" {
			l0Sym = sym
		}
	}
	if l0Sym == "" {
		t.Fatal("expected l0 among call graph nodes")
	}

	limited := cg.Project(callgraph.ProjectionOptions{FromSymbol: l0Sym, MaxDepth: 2})
	if len(limited.Edges) != 2 {
		t.Errorf("max_depth=2 from l0: expected 2 edges, got %d", len(limited.Edges))
	}
}

func TestGetSourceWithContext(t *testing.T) {
	p := New(nil)
	mustAdd(t, p, "a.go", "package a\n\nfunc F() {\n\treturn\n}\n")
	defs := p.GetDefinitions("a.go")
	var f scopegraph.Node
	for _, d := range defs {
		if d.Name == "F" {
			f = d
		}
	}
	if f.Name == "" {
		t.Fatal("expected definition F")
	}
	src := p.GetSourceWithContext(f, "a.go", 0)
	if src == "" {
		t.Error("expected non-empty source context")
	}
}
