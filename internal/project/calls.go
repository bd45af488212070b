package project

import (
	"context"

	"github.com/scopeforge/codegraph/internal/callgraph"
)

// GetFunctionCalls returns every call site targeting the definition
// identified by defSymbolID, across the whole project.
func (p *Project) GetFunctionCalls(defSymbolID string) []callgraph.FunctionCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.ensureAnalysis(context.Background())
	var out []callgraph.FunctionCall
	for _, c := range snap.calls {
		if c.CalleeSymbol == defSymbolID {
			out = append(out, c)
		}
	}
	return out
}

// GetCallsFromDefinition returns every call originating inside the
// definition identified by callerSymbolID's body.
func (p *Project) GetCallsFromDefinition(callerSymbolID string) []callgraph.FunctionCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.ensureAnalysis(context.Background())
	var out []callgraph.FunctionCall
	for _, c := range snap.calls {
		if c.CallerSymbol == callerSymbolID {
			out = append(out, c)
		}
	}
	return out
}

// GetCallGraph builds the full project call graph and applies opts'
// filters: max_depth BFS from top-level nodes (or a single from_symbol),
// file_filter, and include_external. It is a snapshot read: it observes
// exactly one state of every file (spec.md §5).
func (p *Project) GetCallGraph(opts callgraph.ProjectionOptions) *callgraph.CallGraph {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.ensureAnalysis(context.Background())

	defs := map[string]callgraph.CallGraphNode{}
	for _, path := range p.sortedPaths() {
		if opts.FileFilter != nil && !opts.FileFilter[path] {
			continue
		}
		g := p.graphs[path]
		for _, d := range g.Definitions() {
			if !isFunctionLike(d.SymbolKind) {
				continue
			}
			defs[d.SymbolID] = callgraph.CallGraphNode{
				Symbol: d.SymbolID, Name: d.Name, FilePath: path, Kind: d.SymbolKind,
			}
		}
	}

	full := callgraph.BuildCallGraph(snap.calls, defs, opts.IncludeExternal)
	return full.Project(opts)
}

// ExtractCallGraph returns the unfiltered, whole-project call graph
// (get_call_graph with every default option).
func (p *Project) ExtractCallGraph() *callgraph.CallGraph {
	return p.GetCallGraph(callgraph.ProjectionOptions{})
}
