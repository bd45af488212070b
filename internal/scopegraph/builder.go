package scopegraph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/scopeforge/codegraph/internal/fqn"
	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/parser"
)

// identifierKinds are the CST node kinds treated as candidate references
// when they are not claimed as a definition's or import's name node. This
// set is intentionally coarse: it covers the identifier-family node kinds
// shared across the C-like, Python, and Rust grammar families in the pack,
// rather than a per-language table, trading some precision for a single
// walk that works across every registered language.
var identifierKinds = map[string]bool{
	"identifier":                     true,
	"type_identifier":                true,
	"field_identifier":               true,
	"property_identifier":            true,
	"shorthand_property_identifier":  true,
	"scoped_identifier":              true,
}

// claims tracks which CST byte ranges have already been consumed as a
// definition's or import's own name node, so the identifier walk does not
// also emit them as references.
type claims map[[2]uint]bool

func (c claims) claim(n *tree_sitter.Node) {
	if n == nil {
		return
	}
	c[[2]uint{n.StartByte(), n.EndByte()}] = true
}

func (c claims) has(n *tree_sitter.Node) bool {
	return c[[2]uint{n.StartByte(), n.EndByte()}]
}

// builder holds the mutable state threaded through one CST walk.
type builder struct {
	g        *Graph
	cfg      *lang.LanguageConfig
	source   []byte
	filePath string
	claims   claims

	scopeStack      []NodeID
	namingStack     []string
	lastEmittedName string
}

// Build walks cst once against cfg's declarative node-kind tables and
// returns a fully-linked, fully-resolved scope graph for one file. This is
// C3 (construction) followed immediately by the final pass of C4
// (resolution), since spec.md §4.3 treats resolution as the last step of
// the same build.
func Build(cst *tree_sitter.Tree, cfg *lang.LanguageConfig, filePath string, source []byte) *Graph {
	g := newGraph(filePath)
	root := cst.RootNode()

	rootScope := g.addNode(Node{Kind: ScopeNode, Range: rangeOf(root)})
	g.root = rootScope

	b := &builder{
		g:          g,
		cfg:        cfg,
		source:     source,
		filePath:   filePath,
		claims:     make(claims),
		scopeStack: []NodeID{rootScope},
	}
	b.walk(root)
	resolveReferences(g)
	return g
}

func (b *builder) currentScope() NodeID {
	return b.scopeStack[len(b.scopeStack)-1]
}

// insertionScope picks the scope a definition of the given policy belongs
// in, per spec.md §4.3: Local → innermost; Hoisted → nearest non-block
// ancestor; Global → root.
func (b *builder) insertionScope(policy lang.ScopingPolicy) NodeID {
	switch policy {
	case lang.Global:
		return b.scopeStack[0]
	case lang.Hoisted:
		for i := len(b.scopeStack) - 1; i >= 0; i-- {
			scopeID := b.scopeStack[i]
			n, _ := b.g.Node(scopeID)
			if !b.isBlockScope(n) || i == 0 {
				return scopeID
			}
		}
		return b.scopeStack[0]
	default: // Local
		return b.currentScope()
	}
}

func (b *builder) isBlockScope(n Node) bool {
	return n.blockKind != ""
}

func (b *builder) walk(node *tree_sitter.Node) {
	kind := node.Kind()

	if rule, ok := b.cfg.Definitions[kind]; ok {
		b.emitDefinition(node, rule)
	}

	isImport := false
	for _, k := range b.cfg.ImportNodeTypes {
		if k == kind {
			isImport = true
			break
		}
	}
	if isImport {
		b.emitImport(node)
	}

	pushedScope := false
	pushedNaming := false
	if b.cfg.ScopeNodeKinds[kind] {
		pushedScope = true
		parent := b.currentScope()
		scopeID := b.g.addNode(Node{Kind: ScopeNode, Range: rangeOf(node), blockKind: blockKindOf(b.cfg, kind)})
		b.g.addEdge(Edge{Kind: ScopeToScope, From: scopeID, To: parent})
		b.scopeStack = append(b.scopeStack, scopeID)
	}

	if isFunctionOrClass(b.cfg, kind) {
		if name := b.lastEmittedName; name != "" {
			b.namingStack = append(b.namingStack, name)
			pushedNaming = true
		}
	}

	if !isImport {
		b.maybeEmitReference(node)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			b.walk(child)
		}
	}

	if pushedNaming {
		b.namingStack = b.namingStack[:len(b.namingStack)-1]
	}
	if pushedScope {
		b.scopeStack = b.scopeStack[:len(b.scopeStack)-1]
	}
}

func blockKindOf(cfg *lang.LanguageConfig, kind string) string {
	if cfg.BlockScopeNodeKinds[kind] {
		return kind
	}
	return ""
}

func isFunctionOrClass(cfg *lang.LanguageConfig, kind string) bool {
	for _, k := range cfg.FunctionNodeTypes {
		if k == kind {
			return true
		}
	}
	for _, k := range cfg.ClassNodeTypes {
		if k == kind {
			return true
		}
	}
	return false
}

func (b *builder) emitDefinition(node *tree_sitter.Node, rule lang.DefinitionRule) {
	nameNode := definitionNameNode(node)
	var name string
	if nameNode != nil {
		name = parser.NodeText(nameNode, b.source)
		b.claims.claim(nameNode)
	}
	if name == "" {
		b.lastEmittedName = ""
		return
	}
	b.lastEmittedName = name

	scopeID := b.insertionScope(rule.Scoping)

	qualified := append(append([]string{}, b.namingStack...), name)
	symbolID := fqn.SymbolID(b.filePath, qualified...)

	def := Node{
		Kind:       DefinitionNode,
		Range:      rangeOf(node),
		Name:       name,
		SymbolKind: string(rule.Kind),
		FilePath:   b.filePath,
		SymbolID:   symbolID,
		IsExported: b.isExported(node, name, rule),
	}

	if isFunctionOrClass(b.cfg, node.Kind()) {
		r := rangeOf(node)
		def.EnclosingRange = &r
		meta := &Metadata{LineCount: int(def.EnclosingRange.End.Row-def.EnclosingRange.Start.Row) + 1}
		if len(b.namingStack) > 0 {
			meta.ContainingClass = b.namingStack[len(b.namingStack)-1]
		}
		if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
			def.Signature = parser.NodeText(paramsNode, b.source)
			meta.ParameterNames = paramNames(paramsNode, b.source)
		}
		def.Metadata = meta
	}

	id := b.g.addNode(def)
	b.g.addEdge(Edge{Kind: DefToScope, From: id, To: scopeID})
}

// definitionNameNode finds the identifier naming a definition's CST node,
// following the field-lookup ladder the teacher's funcNameNode/
// resolveFuncNameNode use: a "name" field first, then the arrow-function-
// bound-to-a-variable-declarator special case JS/TS needs, then a bare
// identifier child as a last resort (for parameter-like nodes with no
// named field).
func definitionNameNode(node *tree_sitter.Node) *tree_sitter.Node {
	if n := node.ChildByFieldName("name"); n != nil {
		return n
	}
	if node.Kind() == "arrow_function" {
		if p := node.Parent(); p != nil && p.Kind() == "variable_declarator" {
			return p.ChildByFieldName("name")
		}
	}
	if declNode := node.ChildByFieldName("declarator"); declNode != nil {
		if n := declNode.ChildByFieldName("declarator"); n != nil {
			return n
		}
		if n := findChildByKind(declNode, "identifier"); n != nil {
			return n
		}
	}
	if node.Kind() == "identifier" {
		return node
	}
	return findChildByKind(node, "identifier")
}

func findChildByKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

// findDescendantByKind searches node's whole subtree (not just direct
// children) for the first node of the given kind, depth-first.
func findDescendantByKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	if node.Kind() == kind {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		if found := findDescendantByKind(c, kind); found != nil {
			return found
		}
	}
	return nil
}

func paramNames(paramsNode *tree_sitter.Node, source []byte) []string {
	var out []string
	for i := uint(0); i < paramsNode.NamedChildCount(); i++ {
		p := paramsNode.NamedChild(i)
		if p == nil {
			continue
		}
		if n := p.ChildByFieldName("name"); n != nil {
			out = append(out, parser.NodeText(n, source))
		} else if n := findChildByKind(p, "identifier"); n != nil {
			out = append(out, parser.NodeText(n, source))
		}
	}
	return out
}

func (b *builder) isExported(node *tree_sitter.Node, name string, rule lang.DefinitionRule) bool {
	switch b.cfg.ExportPolicy {
	case lang.ExportAlways:
		return true
	case lang.ExportByConvention:
		if b.cfg.Language == lang.Python {
			return !strings.HasPrefix(name, "_")
		}
		if b.cfg.Language == lang.Scala {
			return !strings.HasPrefix(strings.TrimSpace(parser.NodeText(node, b.source)), "private")
		}
		return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
	case lang.ExportByKeyword:
		if hasAncestorKind(node, "export_statement", 4) {
			return true
		}
		text := parser.NodeText(node, b.source)
		for _, kw := range b.cfg.VisibilityKeywords {
			if strings.HasPrefix(strings.TrimSpace(text), kw) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func hasAncestorKind(node *tree_sitter.Node, kind string, maxDepth int) bool {
	p := node.Parent()
	for i := 0; i < maxDepth && p != nil; i++ {
		if p.Kind() == kind {
			return true
		}
		p = p.Parent()
	}
	return false
}

func (b *builder) emitImport(node *tree_sitter.Node) {
	scopeID := b.currentScope()

	name := ""
	sourceModule := ""
	sourceName := ""

	if n := node.ChildByFieldName("name"); n != nil {
		name = parser.NodeText(n, b.source)
		b.claims.claim(n)
	}
	for _, field := range []string{"path", "source", "module"} {
		if n := node.ChildByFieldName(field); n != nil {
			sourceModule = strings.Trim(parser.NodeText(n, b.source), `"'`)
			break
		}
	}
	if sourceModule == "" {
		// Some grammars (e.g. Go's unparenthesized `import "x"`) nest the
		// path literal inside an intermediate spec node rather than
		// exposing it as a direct child or named field, so the whole
		// import node's small subtree is searched rather than just its
		// immediate children.
		if n := findDescendantByKind(node, "string"); n != nil {
			sourceModule = strings.Trim(parser.NodeText(n, b.source), `"'`)
		} else if n := findDescendantByKind(node, "interpreted_string_literal"); n != nil {
			sourceModule = strings.Trim(parser.NodeText(n, b.source), `"'`)
		}
	}
	if name == "" {
		if sourceModule != "" {
			parts := strings.Split(sourceModule, "/")
			name = parts[len(parts)-1]
		} else {
			name = parser.NodeText(node, b.source)
		}
	}

	imp := Node{
		Kind:         ImportNode,
		Range:        rangeOf(node),
		Name:         name,
		SourceName:   sourceName,
		SourceModule: sourceModule,
	}
	id := b.g.addNode(imp)
	b.g.addEdge(Edge{Kind: ImportToScope, From: id, To: scopeID})
}

func (b *builder) maybeEmitReference(node *tree_sitter.Node) {
	if !identifierKinds[node.Kind()] {
		return
	}
	if b.claims.has(node) {
		return
	}
	name := parser.NodeText(node, b.source)
	if name == "" {
		return
	}
	ref := Node{Kind: ReferenceNode, Range: rangeOf(node), Name: name}
	id := b.g.addNode(ref)
	b.g.addEdge(Edge{Kind: RefToScope, From: id, To: b.currentScope()})
}
