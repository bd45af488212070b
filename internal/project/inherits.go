// Inheritance extraction (C8, feeding get_class_relationships). Grounded
// on the teacher's extractClassDef base_classes capture (internal/pipeline
// extracts base_classes as a node property during definition extraction;
// internal/pipeline/inherits.go then resolves each name through the same
// FunctionRegistry ladder this engine's callgraph.Registry reimplements)
// and internal/pipeline/implements.go's Go interface-satisfaction pass
// (collectGoInterfaces/collectStructMethods/matchImplements), simplified
// here to explicit extends/implements name lists resolved once in phase 2
// rather than a separate structural-typing pass.
package project

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/scopeforge/codegraph/internal/callgraph"
	"github.com/scopeforge/codegraph/internal/fqn"
	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/parser"
	"github.com/scopeforge/codegraph/internal/scopegraph"
)

// classRelationship records one class-like definition's direct parent and
// implemented/trait interfaces, as symbol ids once resolved.
type classRelationship struct {
	ParentSymbol     string
	InterfaceSymbols []string
}

// buildInheritance walks every class-like definition's CST node a second
// time (the scope graph itself does not retain CST pointers once built)
// to extract its parent/interface name list, then resolves each name
// through reg the same way a call-site callee name is resolved.
func (p *Project) buildInheritance(reg *callgraph.Registry, importMaps map[string]map[string]string) map[string]classRelationship {
	out := map[string]classRelationship{}

	for _, path := range p.sortedPaths() {
		f, ok := p.cache.Get(path)
		if !ok || !f.Parsed || f.Tree == nil {
			continue
		}
		cfg := lang.ForLanguage(f.Language)
		if cfg == nil {
			continue
		}
		g := p.graphs[path]
		moduleQualified := fqn.NormalizeModulePath(path)
		importMap := importMaps[path]

		for _, d := range g.Definitions() {
			if !isClassLike(d.SymbolKind) {
				continue
			}
			node := findNodeAtRange(f.Tree.RootNode(), cfg.ClassNodeTypes, d.Range)
			if node == nil {
				continue
			}
			parentNames, ifaceNames := extractHeritage(cfg.Language, node, f.Text)

			var rel classRelationship
			if parentNames != "" {
				if sym, ok := reg.Resolve(parentNames, moduleQualified, importMap); ok {
					rel.ParentSymbol = sym
				}
			}
			for _, name := range ifaceNames {
				if sym, ok := reg.Resolve(name, moduleQualified, importMap); ok {
					rel.InterfaceSymbols = append(rel.InterfaceSymbols, sym)
				}
			}
			if rel.ParentSymbol != "" || len(rel.InterfaceSymbols) > 0 {
				out[d.SymbolID] = rel
			}
		}
	}
	return out
}

// findNodeAtRange locates the node among kinds whose start/end position
// matches rng exactly, the same range the scope-graph builder recorded
// for this definition.
func findNodeAtRange(root *tree_sitter.Node, kinds []string, rng scopegraph.Range) *tree_sitter.Node {
	set := map[string]bool{}
	for _, k := range kinds {
		set[k] = true
	}
	var found *tree_sitter.Node
	parser.Walk(root, func(n *tree_sitter.Node) bool {
		if found != nil {
			return false
		}
		if !set[n.Kind()] {
			return true
		}
		start, end := n.StartPosition(), n.EndPosition()
		if uint32(start.Row) == rng.Start.Row && uint32(start.Column) == rng.Start.Column &&
			uint32(end.Row) == rng.End.Row && uint32(end.Column) == rng.End.Column {
			found = n
			return false
		}
		return true
	})
	return found
}

// extractHeritage returns (parentName, interfaceNames) for a class-like
// node, per language. Languages not listed here return no relationship:
// Rust's trait/impl split, PHP/Lua/Scala/Kotlin's heritage clauses do not
// share a common field shape with the languages below and are left
// unextracted (documented in DESIGN.md) rather than guessed at.
func extractHeritage(l lang.Language, node *tree_sitter.Node, source []byte) (string, []string) {
	switch l {
	case lang.Go:
		return extractGoHeritage(node, source)
	case lang.Python:
		return extractPythonHeritage(node, source)
	case lang.JavaScript, lang.TypeScript, lang.TSX:
		return extractJSHeritage(node, source)
	case lang.Java:
		return extractJavaHeritage(node, source)
	case lang.CPP:
		return extractCppHeritage(node, source)
	case lang.CSharp:
		return extractCSharpHeritage(node, source)
	default:
		return "", nil
	}
}

// extractGoHeritage treats Go's embedding as its inheritance analogue: in a
// struct_type the first anonymous (unnamed) field is the "parent" and any
// further ones are returned as interfaces; the names embedded in an
// interface_type are all returned as interfaces, with no parent.
func extractGoHeritage(node *tree_sitter.Node, source []byte) (string, []string) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return "", nil
	}
	switch typeNode.Kind() {
	case "struct_type":
		fieldList := findChildKind(typeNode, "field_declaration_list")
		if fieldList == nil {
			return "", nil
		}
		var embedded []string
		for i := uint(0); i < fieldList.NamedChildCount(); i++ {
			fd := fieldList.NamedChild(i)
			if fd == nil || fd.Kind() != "field_declaration" {
				continue
			}
			if fd.ChildByFieldName("name") != nil {
				continue
			}
			if t := fd.ChildByFieldName("type"); t != nil {
				embedded = append(embedded, strings.TrimPrefix(parser.NodeText(t, source), "*"))
			}
		}
		if len(embedded) == 0 {
			return "", nil
		}
		return embedded[0], embedded[1:]
	case "interface_type":
		var embedded []string
		for i := uint(0); i < typeNode.NamedChildCount(); i++ {
			c := typeNode.NamedChild(i)
			if c == nil {
				continue
			}
			if c.Kind() == "type_identifier" || c.Kind() == "qualified_type" {
				embedded = append(embedded, parser.NodeText(c, source))
			}
		}
		return "", embedded
	}
	return "", nil
}

func extractPythonHeritage(node *tree_sitter.Node, source []byte) (string, []string) {
	super := node.ChildByFieldName("superclasses")
	if super == nil {
		return "", nil
	}
	var names []string
	for i := uint(0); i < super.NamedChildCount(); i++ {
		c := super.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "identifier", "attribute":
			names = append(names, parser.NodeText(c, source))
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], names[1:]
}

func extractJSHeritage(node *tree_sitter.Node, source []byte) (string, []string) {
	heritage := findChildKind(node, "class_heritage")
	if heritage == nil {
		return "", nil
	}
	var parent string
	var ifaces []string
	for i := uint(0); i < heritage.NamedChildCount(); i++ {
		c := heritage.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "extends_clause":
			if v := c.NamedChild(0); v != nil {
				parent = parser.NodeText(v, source)
			}
		case "implements_clause":
			for j := uint(0); j < c.NamedChildCount(); j++ {
				if t := c.NamedChild(j); t != nil {
					ifaces = append(ifaces, parser.NodeText(t, source))
				}
			}
		}
	}
	return parent, ifaces
}

func extractJavaHeritage(node *tree_sitter.Node, source []byte) (string, []string) {
	var parent string
	if sc := node.ChildByFieldName("superclass"); sc != nil {
		parent = strings.TrimSpace(strings.TrimPrefix(parser.NodeText(sc, source), "extends"))
	}
	var ifaces []string
	if in := node.ChildByFieldName("interfaces"); in != nil {
		list := findChildKind(in, "type_list")
		if list != nil {
			for i := uint(0); i < list.NamedChildCount(); i++ {
				if t := list.NamedChild(i); t != nil {
					ifaces = append(ifaces, parser.NodeText(t, source))
				}
			}
		}
	}
	return strings.TrimSpace(parent), ifaces
}

func extractCppHeritage(node *tree_sitter.Node, source []byte) (string, []string) {
	clause := findChildKind(node, "base_class_clause")
	if clause == nil {
		return "", nil
	}
	var names []string
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		c := clause.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "type_identifier", "qualified_identifier":
			names = append(names, parser.NodeText(c, source))
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], names[1:]
}

func extractCSharpHeritage(node *tree_sitter.Node, source []byte) (string, []string) {
	list := node.ChildByFieldName("bases")
	if list == nil {
		list = findChildKind(node, "base_list")
	}
	if list == nil {
		return "", nil
	}
	var names []string
	for i := uint(0); i < list.NamedChildCount(); i++ {
		c := list.NamedChild(i)
		if c == nil {
			continue
		}
		names = append(names, parser.NodeText(c, source))
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], names[1:]
}

func findChildKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}
