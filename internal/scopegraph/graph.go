// Package scopegraph builds and queries the per-file scope graph: the
// typed arena of scope/definition/reference/import nodes and the edges
// binding them, as spec'd in §3 (data model) and §4.3-4.4 (builder and
// resolver). It generalizes the teacher's flat qualified-name extraction
// (internal/pipeline's extract*Def family) into an explicit graph so that
// def/ref/import resolution is a graph query rather than a string match.
package scopegraph

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// Position is a 0-based row/column location.
type Position struct {
	Row    uint32
	Column uint32
}

// Range is a half-open-by-convention [Start, End] span; Start <= End
// lexicographically.
type Range struct {
	Start Position
	End   Position
}

func (r Range) Contains(p Range) bool {
	return !less(p.Start, r.Start) && !less(r.End, p.End)
}

func less(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

func rangeOf(n *tree_sitter.Node) Range {
	start := n.StartPosition()
	end := n.EndPosition()
	return Range{
		Start: Position{Row: uint32(start.Row), Column: uint32(start.Column)},
		End:   Position{Row: uint32(end.Row), Column: uint32(end.Column)},
	}
}

// NodeID identifies a node uniquely within one file's graph.
type NodeID int

// NodeKind discriminates the sum-typed Node.
type NodeKind int

const (
	ScopeNode NodeKind = iota
	DefinitionNode
	ReferenceNode
	ImportNode
)

// Metadata carries the optional per-definition annotations spec.md §3
// lists: line count, parameter names, is-async, is-test, is-private,
// containing class, decorators.
type Metadata struct {
	LineCount       int
	ParameterNames  []string
	IsAsync         bool
	IsTest          bool
	IsPrivate       bool
	ContainingClass string
	Decorators      []string
}

// Node is the sum type of scope-graph nodes. Only the fields relevant to
// Kind are populated; callers branch on Kind.
type Node struct {
	ID    NodeID
	Kind  NodeKind
	Range Range

	// blockKind is set on Scope nodes rooted at a node kind the language
	// config marks as a block scope (if/for/while bodies), used by the
	// Hoisted scoping policy to skip past them. Empty for non-block scopes
	// and for every other node kind.
	blockKind string

	// Definition / Reference / Import share Name.
	Name string

	// Definition-only fields.
	SymbolKind     string // from lang.SymbolKind
	FilePath       string
	SymbolID       string
	EnclosingRange *Range
	Signature      string
	Docstring      string
	Metadata       *Metadata
	IsExported     bool

	// Reference-only field: an optional symbol-kind hint. Build does not
	// set it and resolution does not read it.
	SymbolKindHint string

	// Import-only fields.
	SourceName   string // original name before a rename, if any
	SourceModule string // the module path text as written, unresolved
}

// EdgeKind discriminates the six edge variants of spec.md §3.
type EdgeKind int

const (
	DefToScope EdgeKind = iota
	ImportToScope
	RefToScope
	ScopeToScope
	RefToDef
	RefToImport
)

// Edge is a directed arc between two node ids in the same file's graph.
type Edge struct {
	Kind EdgeKind
	From NodeID
	To   NodeID
}

// Graph is the per-file scope graph: an arena of nodes plus the edges
// linking them. The zero value is not usable; construct with Build or
// FromSnapshot.
type Graph struct {
	FilePath string
	nodes    []Node
	edges    []Edge

	// scopeOf indexes, per node id, the scope it belongs to (def/import
	// nodes only) or its parent scope (scope nodes), mirroring the
	// *_to_scope / scope_to_scope edges for O(1) lookup.
	scopeOf map[NodeID]NodeID
	// children indexes each scope's direct child scopes.
	childScopes map[NodeID][]NodeID
	// membersOf indexes each scope's direct definitions and imports.
	membersOf map[NodeID][]NodeID
	// resolved indexes each reference's resolution target, if any.
	resolved map[NodeID]NodeID
	// resolvedIsImport records whether resolved[ref] points at an Import
	// node (ref_to_import) rather than a Definition node (ref_to_def).
	resolvedIsImport map[NodeID]bool

	root NodeID
}

func newGraph(filePath string) *Graph {
	return &Graph{
		FilePath:         filePath,
		scopeOf:          make(map[NodeID]NodeID),
		childScopes:      make(map[NodeID][]NodeID),
		membersOf:        make(map[NodeID][]NodeID),
		resolved:         make(map[NodeID]NodeID),
		resolvedIsImport: make(map[NodeID]bool),
	}
}

func (g *Graph) addNode(n Node) NodeID {
	n.ID = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return n.ID
}

func (g *Graph) addEdge(e Edge) {
	g.edges = append(g.edges, e)
	switch e.Kind {
	case DefToScope, ImportToScope:
		g.scopeOf[e.From] = e.To
		g.membersOf[e.To] = append(g.membersOf[e.To], e.From)
	case ScopeToScope:
		g.scopeOf[e.From] = e.To
		g.childScopes[e.To] = append(g.childScopes[e.To], e.From)
	case RefToScope:
		g.scopeOf[e.From] = e.To
	case RefToDef:
		g.resolved[e.From] = e.To
		g.resolvedIsImport[e.From] = false
	case RefToImport:
		g.resolved[e.From] = e.To
		g.resolvedIsImport[e.From] = true
	}
}

// Node returns a node by id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if int(id) < 0 || int(id) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Nodes returns every node of a given kind, in id order (== CST discovery
// order, since ids are assigned during the single walk).
func (g *Graph) Nodes(kind NodeKind) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns every edge of a given kind.
func (g *Graph) Edges(kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Root returns the root (module/file-level) scope node id.
func (g *Graph) Root() NodeID {
	return g.root
}
