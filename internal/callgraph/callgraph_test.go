package callgraph

import (
	"testing"

	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/parser"
	"github.com/scopeforge/codegraph/internal/scopegraph"
	"github.com/scopeforge/codegraph/internal/types"
)

const goSample = `package sample

type Widget struct{}

func NewWidget() *Widget {
	return &Widget{}
}

func (w *Widget) Render() string {
	return "ok"
}

func Add(a int, b int) int {
	return a + b
}

func main() {
	Add(1, 2)
	w := NewWidget()
	w.Render()
	Unknown()
}
`

func buildGoFixture(t *testing.T) (*scopegraph.Graph, *lang.LanguageConfig) {
	t.Helper()
	tree, err := parser.Parse(lang.Go, []byte(goSample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := lang.ForLanguage(lang.Go)
	g := scopegraph.Build(tree, cfg, "sample.go", []byte(goSample))
	return g, cfg
}

func registryFromGraph(g *scopegraph.Graph) *Registry {
	reg := NewRegistry()
	for _, d := range g.Definitions() {
		reg.Register(d.Name, d.SymbolID, d.SymbolKind)
	}
	return reg
}

func extractSample(t *testing.T) []FunctionCall {
	t.Helper()
	tree, err := parser.Parse(lang.Go, []byte(goSample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := lang.ForLanguage(lang.Go)
	g := scopegraph.Build(tree, cfg, "sample.go", []byte(goSample))
	reg := registryFromGraph(g)
	ftt := types.NewFileTypeTracker()
	return ExtractFileCalls(tree, cfg, []byte(goSample), "sample", reg, ftt, nil, g)
}

func TestExtractFileCallsFindsDirectCall(t *testing.T) {
	calls := extractSample(t)
	found := false
	for _, c := range calls {
		if c.CalleeName == "Add" {
			found = true
			if c.CalleeSymbol == "" {
				t.Error("expected Add to resolve to a symbol id")
			}
			if c.Kind != DirectCall {
				t.Errorf("Add call kind = %v, want DirectCall", c.Kind)
			}
		}
	}
	if !found {
		t.Fatal("expected a call to Add among extracted calls")
	}
}

func TestExtractFileCallsClassifiesConstructorCall(t *testing.T) {
	calls := extractSample(t)
	for _, c := range calls {
		if c.CalleeName == "NewWidget" {
			if c.Kind != ConstructorCall && c.Kind != DirectCall {
				t.Errorf("NewWidget call kind = %v", c.Kind)
			}
			return
		}
	}
	t.Fatal("expected a call to NewWidget among extracted calls")
}

func TestExtractFileCallsUnresolvedHasEmptySymbol(t *testing.T) {
	calls := extractSample(t)
	for _, c := range calls {
		if c.CalleeName == "Unknown" {
			if c.CalleeSymbol != "" {
				t.Errorf("Unknown should be unresolved, got symbol %q", c.CalleeSymbol)
			}
			return
		}
	}
	t.Fatal("expected a call to Unknown among extracted calls")
}

func TestRegistryResolveSameModule(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Add", "other#Add", "function")
	reg.Register("Add", "sample#Add", "function")

	symID, ok := reg.Resolve("Add", "sample", nil)
	if !ok || symID != "sample#Add" {
		t.Errorf("Resolve(Add) = %q, %v, want sample#Add, true", symID, ok)
	}
}

func TestRegistryFuzzyResolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Render", "widget.go#widget.Widget.Render", "method")

	symID, ok := reg.FuzzyResolve("w.Render", "other")
	if !ok || symID != "widget.go#widget.Widget.Render" {
		t.Errorf("FuzzyResolve = %q, %v, want widget.go#widget.Widget.Render, true", symID, ok)
	}
}

func TestRegistryResolveUnknownReturnsFalse(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resolve("Nope", "sample", nil); ok {
		t.Error("expected Resolve to fail for an unregistered name")
	}
}

func TestBuildCallGraphTopLevelNodes(t *testing.T) {
	calls := []FunctionCall{
		{CallerSymbol: "a#main", CalleeSymbol: "a#Add", CalleeName: "Add", Kind: DirectCall},
	}
	defs := map[string]CallGraphNode{
		"a#main": {Symbol: "a#main", Name: "main", FilePath: "a.go", Kind: "function"},
		"a#Add":  {Symbol: "a#Add", Name: "Add", FilePath: "a.go", Kind: "function"},
	}
	cg := BuildCallGraph(calls, defs, false)

	if len(cg.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(cg.Edges))
	}
	if len(cg.TopLevelNodes) != 1 || cg.TopLevelNodes[0] != "a#main" {
		t.Errorf("TopLevelNodes = %v, want [a#main]", cg.TopLevelNodes)
	}
}

func TestBuildCallGraphIncludeExternal(t *testing.T) {
	calls := []FunctionCall{
		{CallerSymbol: "a#main", CalleeSymbol: "", CalleeName: "Unknown", Kind: DirectCall},
	}
	defs := map[string]CallGraphNode{
		"a#main": {Symbol: "a#main", Name: "main", FilePath: "a.go", Kind: "function"},
	}

	withoutExternal := BuildCallGraph(calls, defs, false)
	if len(withoutExternal.Edges) != 0 {
		t.Errorf("expected no edges when include_external is false, got %d", len(withoutExternal.Edges))
	}

	withExternal := BuildCallGraph(calls, defs, true)
	if len(withExternal.Edges) != 1 {
		t.Fatalf("expected 1 edge when include_external is true, got %d", len(withExternal.Edges))
	}
	to := withExternal.Edges[0].To
	if to != BuiltinSymbol+"Unknown" {
		t.Errorf("edge target = %q, want %q", to, BuiltinSymbol+"Unknown")
	}
	if _, ok := withExternal.Nodes[to]; !ok {
		t.Error("builtin sentinel must appear as a node when include_external is true")
	}
}

func TestProjectRespectsMaxDepth(t *testing.T) {
	calls := []FunctionCall{
		{CallerSymbol: "a#main", CalleeSymbol: "a#mid", CalleeName: "mid", Kind: DirectCall},
		{CallerSymbol: "a#mid", CalleeSymbol: "a#leaf", CalleeName: "leaf", Kind: DirectCall},
	}
	defs := map[string]CallGraphNode{
		"a#main": {Symbol: "a#main", FilePath: "a.go"},
		"a#mid":  {Symbol: "a#mid", FilePath: "a.go"},
		"a#leaf": {Symbol: "a#leaf", FilePath: "a.go"},
	}
	cg := BuildCallGraph(calls, defs, false)

	shallow := cg.Project(ProjectionOptions{FromSymbol: "a#main", MaxDepth: 1})
	if len(shallow.Edges) != 1 {
		t.Errorf("max_depth=1 from main: expected 1 edge, got %d", len(shallow.Edges))
	}

	deep := cg.Project(ProjectionOptions{FromSymbol: "a#main", MaxDepth: 2})
	if len(deep.Edges) != 2 {
		t.Errorf("max_depth=2 from main: expected 2 edges, got %d", len(deep.Edges))
	}
}

func TestProjectEveryEdgeEndpointIsANode(t *testing.T) {
	calls := []FunctionCall{
		{CallerSymbol: "a#main", CalleeSymbol: "", CalleeName: "Unknown", Kind: DirectCall},
	}
	defs := map[string]CallGraphNode{
		"a#main": {Symbol: "a#main", FilePath: "a.go"},
	}
	cg := BuildCallGraph(calls, defs, true)
	proj := cg.Project(ProjectionOptions{IncludeExternal: true})

	for _, e := range proj.Edges {
		if _, ok := proj.Nodes[e.From]; !ok {
			t.Errorf("edge source %q missing from nodes", e.From)
		}
		if _, ok := proj.Nodes[e.To]; !ok {
			if !isBuiltin(e.To) {
				t.Errorf("edge target %q missing from nodes and not a builtin", e.To)
			}
		}
	}
}
