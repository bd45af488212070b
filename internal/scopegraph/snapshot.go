package scopegraph

// Snapshot is a serializable capture of a built Graph: enough to
// reconstruct it without reparsing the file's source, used by the
// pluggable storage backend (spec.md §6's get_file_graph/update_file).
// Node's unexported blockKind is dropped on a JSON round trip; that is
// only ever consulted during Build's own walk, never by a query run
// against an already-built graph, so a restored Snapshot answers every
// resolver/callgraph query exactly as the original did.
type Snapshot struct {
	FilePath string
	Nodes    []Node
	Edges    []Edge
	Root     NodeID
}

// ToSnapshot captures g's current state.
func (g *Graph) ToSnapshot() Snapshot {
	return Snapshot{
		FilePath: g.FilePath,
		Nodes:    append([]Node{}, g.nodes...),
		Edges:    append([]Edge{}, g.edges...),
		Root:     g.root,
	}
}

// FromSnapshot rebuilds a Graph from a previously captured Snapshot,
// replaying every edge through addEdge so the derived indices (scopeOf,
// membersOf, resolved) are restored exactly as they were after Build.
func FromSnapshot(s Snapshot) *Graph {
	g := newGraph(s.FilePath)
	g.nodes = append([]Node{}, s.Nodes...)
	g.root = s.Root
	for _, e := range s.Edges {
		g.addEdge(e)
	}
	return g
}
