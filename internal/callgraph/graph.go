package callgraph

// CallGraphNode is one function/method/constructor reachable from the
// project's call sites.
type CallGraphNode struct {
	Symbol   string
	Name     string
	FilePath string
	Kind     string
}

// CallGraphEdge is one caller->callee call, annotated with how it was
// classified and resolved.
type CallGraphEdge struct {
	From           string
	To             string
	Kind           CallKind
	ResolutionMode string
}

// CallGraph is the queryable projection produced by ExtractCallGraph: every
// node and edge discovered project-wide, plus the set of nodes no other
// node calls into (top_level_nodes, testable property 5).
type CallGraph struct {
	Nodes         map[string]CallGraphNode
	Edges         []CallGraphEdge
	TopLevelNodes []string
}

// BuildCallGraph assembles a CallGraph from every file's resolved calls
// plus the project's known definitions. include_external controls whether
// an unresolved call is surfaced as an edge into the <builtin>#<name>
// sentinel node (testable property 4) or simply dropped.
func BuildCallGraph(allCalls []FunctionCall, definitions map[string]CallGraphNode, includeExternal bool) *CallGraph {
	cg := &CallGraph{Nodes: map[string]CallGraphNode{}}

	for sym, n := range definitions {
		cg.Nodes[sym] = n
	}

	called := map[string]bool{}
	for _, call := range allCalls {
		to := call.CalleeSymbol
		if to == "" {
			if !includeExternal {
				continue
			}
			to = BuiltinSymbol + call.CalleeName
			if _, ok := cg.Nodes[to]; !ok {
				cg.Nodes[to] = CallGraphNode{Symbol: to, Name: call.CalleeName, Kind: "builtin"}
			}
		}
		if _, ok := cg.Nodes[call.CallerSymbol]; !ok {
			cg.Nodes[call.CallerSymbol] = CallGraphNode{Symbol: call.CallerSymbol, Kind: "module"}
		}
		cg.Edges = append(cg.Edges, CallGraphEdge{
			From:           call.CallerSymbol,
			To:             to,
			Kind:           call.Kind,
			ResolutionMode: call.ResolutionMode,
		})
		called[to] = true
	}

	for sym := range cg.Nodes {
		if !called[sym] {
			cg.TopLevelNodes = append(cg.TopLevelNodes, sym)
		}
	}
	return cg
}

// Project applies get_call_graph's filters: starting from top_level_nodes
// (or from_symbol if given), a breadth-first walk capped at max_depth
// hops, restricted to file_filter when non-nil, dropping builtin nodes
// unless include_external is requested.
type ProjectionOptions struct {
	FromSymbol      string // empty = start from every top-level node
	MaxDepth        int    // <=0 = unbounded
	FileFilter      map[string]bool
	IncludeExternal bool
}

func (cg *CallGraph) Project(opts ProjectionOptions) *CallGraph {
	adjacency := map[string][]CallGraphEdge{}
	for _, e := range cg.Edges {
		adjacency[e.From] = append(adjacency[e.From], e)
	}

	var starts []string
	if opts.FromSymbol != "" {
		starts = []string{opts.FromSymbol}
	} else {
		starts = cg.TopLevelNodes
	}

	type queued struct {
		symbol string
		depth  int
	}
	visited := map[string]bool{}
	queue := make([]queued, 0, len(starts))
	for _, s := range starts {
		if !visited[s] {
			visited[s] = true
			queue = append(queue, queued{symbol: s, depth: 0})
		}
	}

	result := &CallGraph{Nodes: map[string]CallGraphNode{}}
	if n, ok := cg.Nodes[opts.FromSymbol]; ok {
		result.Nodes[opts.FromSymbol] = n
	}
	for _, s := range starts {
		if n, ok := cg.Nodes[s]; ok {
			result.Nodes[s] = n
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if opts.MaxDepth > 0 && cur.depth >= opts.MaxDepth {
			continue
		}
		for _, e := range adjacency[cur.symbol] {
			if !opts.IncludeExternal && isBuiltin(e.To) {
				continue
			}
			if opts.FileFilter != nil {
				if n, ok := cg.Nodes[e.To]; ok && n.FilePath != "" && !opts.FileFilter[n.FilePath] {
					continue
				}
			}
			result.Edges = append(result.Edges, e)
			if n, ok := cg.Nodes[e.To]; ok {
				result.Nodes[e.To] = n
			}
			if !visited[e.To] {
				visited[e.To] = true
				queue = append(queue, queued{symbol: e.To, depth: cur.depth + 1})
			}
		}
	}

	called := map[string]bool{}
	for _, e := range result.Edges {
		called[e.To] = true
	}
	for sym := range result.Nodes {
		if !called[sym] {
			result.TopLevelNodes = append(result.TopLevelNodes, sym)
		}
	}
	return result
}

func isBuiltin(symbol string) bool {
	return len(symbol) >= len(BuiltinSymbol) && symbol[:len(BuiltinSymbol)] == BuiltinSymbol
}
