package scopegraph

// resolveReferences runs the final pass of C4: for every Reference node,
// walk from its own scope up to the root, and at each scope level look
// for a matching Definition or Import by name. A Definition and an
// Import with the same name at the same scope level is not ambiguous: a
// local rebinding of an imported name wins (definition beats import at
// the same scope), per spec.md §4.3/§4.4's reference-resolution pass.
func resolveReferences(g *Graph) {
	for _, ref := range g.Nodes(ReferenceNode) {
		scopeID, ok := g.scopeOf[ref.ID]
		if !ok {
			continue
		}
		defID, impID, found := lookup(g, scopeID, ref.Name)
		if !found {
			continue
		}
		if defID >= 0 {
			g.addEdge(Edge{Kind: RefToDef, From: ref.ID, To: defID})
		} else {
			g.addEdge(Edge{Kind: RefToImport, From: ref.ID, To: impID})
		}
	}
}

// lookup walks from scopeID up to the root looking for a member (import
// or definition) named name. Returns (defID, -1, true) for a definition
// match, (-1, impID, true) for an import-only match, or (-1, -1, false)
// if nothing is found anywhere on the path to the root.
func lookup(g *Graph, scopeID NodeID, name string) (NodeID, NodeID, bool) {
	current := scopeID
	for {
		var defMatch, impMatch NodeID = -1, -1
		for _, memberID := range g.membersOf[current] {
			n, ok := g.Node(memberID)
			if !ok || n.Name != name {
				continue
			}
			switch n.Kind {
			case DefinitionNode:
				defMatch = memberID
			case ImportNode:
				impMatch = memberID
			}
		}
		if defMatch >= 0 {
			return defMatch, -1, true
		}
		if impMatch >= 0 {
			return -1, impMatch, true
		}

		parent, ok := g.scopeOf[current]
		if !ok || parent == current {
			return -1, -1, false
		}
		current = parent
	}
}

// GoToDefinition resolves the reference whose range matches pos (the
// innermost reference containing pos) to its target definition, if any.
func (g *Graph) GoToDefinition(pos Position) (Node, bool) {
	ref, ok := g.referenceAt(pos)
	if !ok {
		return Node{}, false
	}
	target, has := g.resolved[ref.ID]
	if !has {
		return Node{}, false
	}
	return g.Node(target)
}

func (g *Graph) referenceAt(pos Position) (Node, bool) {
	var best Node
	found := false
	for _, n := range g.Nodes(ReferenceNode) {
		if within(pos, n.Range) {
			if !found || smaller(n.Range, best.Range) {
				best = n
				found = true
			}
		}
	}
	return best, found
}

func within(pos Position, r Range) bool {
	return !less(pos, r.Start) && !less(r.End, pos)
}

func smaller(a, b Range) bool {
	aLines := a.End.Row - a.Start.Row
	bLines := b.End.Row - b.Start.Row
	return aLines < bLines
}

// FindReferences returns every reference that resolved to the definition
// with the given symbol id.
func (g *Graph) FindReferences(symbolID string) []Node {
	var target NodeID = -1
	for _, d := range g.Nodes(DefinitionNode) {
		if d.SymbolID == symbolID {
			target = d.ID
			break
		}
	}
	if target < 0 {
		return nil
	}
	var out []Node
	for _, ref := range g.Nodes(ReferenceNode) {
		if tgt, ok := g.resolved[ref.ID]; ok && tgt == target && !g.resolvedIsImport[ref.ID] {
			out = append(out, ref)
		}
	}
	return out
}

// Definitions returns every definition node in the graph.
func (g *Graph) Definitions() []Node {
	return g.Nodes(DefinitionNode)
}

// ExportedDefinitions returns every definition node marked exported.
func (g *Graph) ExportedDefinitions() []Node {
	var out []Node
	for _, d := range g.Nodes(DefinitionNode) {
		if d.IsExported {
			out = append(out, d)
		}
	}
	return out
}

// DefinitionsOfKind returns every definition whose SymbolKind matches kind
// (e.g. "function", "method").
func (g *Graph) DefinitionsOfKind(kind string) []Node {
	var out []Node
	for _, d := range g.Nodes(DefinitionNode) {
		if d.SymbolKind == kind {
			out = append(out, d)
		}
	}
	return out
}

// ImportsWithDefinitions returns every import of this file paired with the
// definition resolve maps it to, whether or not any reference uses it (an
// import for which resolve finds no definition is simply omitted, per
// spec.md §7's UnresolvedImport policy).
func (g *Graph) ImportsWithDefinitions(resolve func(imp Node) (Node, bool)) []struct {
	Import     Node
	Definition Node
} {
	var out []struct {
		Import     Node
		Definition Node
	}
	for _, imp := range g.Nodes(ImportNode) {
		if def, ok := resolve(imp); ok {
			out = append(out, struct {
				Import     Node
				Definition Node
			}{Import: imp, Definition: def})
		}
	}
	return out
}

// EnclosingDefinition returns the innermost Function/Method/Class-like
// definition whose EnclosingRange contains pos, used by the call-graph
// analyzer to attribute a call site to its caller.
func (g *Graph) EnclosingDefinition(pos Position) (Node, bool) {
	var best Node
	found := false
	for _, d := range g.Nodes(DefinitionNode) {
		if d.EnclosingRange == nil {
			continue
		}
		if within(pos, *d.EnclosingRange) {
			if !found || smaller(*d.EnclosingRange, *best.EnclosingRange) {
				best = d
				found = true
			}
		}
	}
	return best, found
}
