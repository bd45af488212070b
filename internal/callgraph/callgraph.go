package callgraph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/parser"
	"github.com/scopeforge/codegraph/internal/scopegraph"
	"github.com/scopeforge/codegraph/internal/types"
)

// CallKind classifies a call site, mirroring the teacher's label-inference
// for extracted definitions (Function vs Method) but applied to the call
// side instead: a constructor call instantiates a known class, a method
// call dispatches on a receiver whose class is known, everything else is
// a direct (possibly unresolved) call.
type CallKind string

const (
	DirectCall      CallKind = "direct"
	MethodCall      CallKind = "method"
	ConstructorCall CallKind = "constructor"
)

// BuiltinSymbol is the sentinel symbol id assigned to a call whose target
// could not be resolved to any project definition, surfaced only when a
// caller opts into include_external.
const BuiltinSymbol = "<builtin>#"

// FunctionCall is one resolved (or unresolved) call site.
type FunctionCall struct {
	CallerSymbol   string
	CalleeSymbol   string // "" if unresolved
	CalleeName     string // the name as written at the call site
	Kind           CallKind
	ResolutionMode string // "exact" or "fuzzy"; "" if unresolved
	Position       scopegraph.Position
}

// ModuleCallerSymbol is the synthetic caller symbol id assigned to a call
// site that lies outside every enclosing function/class range (a
// module-level call), keyed per file so it does not collide across files.
func ModuleCallerSymbol(fileModuleSymbolPrefix string) string {
	return fileModuleSymbolPrefix + "#<module>"
}

// ExtractFileCalls walks g's file once, classifying every call-type node
// per cfg and resolving it against reg using a local type tracker seeded
// with ftt and the import map importMap (local alias -> resolved module
// dotted path). moduleQualified is the calling file's dotted module path
// (the module half of its symbol ids, before the '#').
func ExtractFileCalls(
	cst *tree_sitter.Tree,
	cfg *lang.LanguageConfig,
	source []byte,
	moduleQualified string,
	reg *Registry,
	ftt *types.FileTypeTracker,
	importMap map[string]string,
	g *scopegraph.Graph,
) []FunctionCall {
	callKinds := map[string]bool{}
	for _, k := range cfg.CallNodeTypes {
		callKinds[k] = true
	}

	var calls []FunctionCall
	root := cst.RootNode()

	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if !callKinds[node.Kind()] {
			return true
		}

		calleeName := extractCalleeName(node, source)
		if calleeName == "" {
			return true
		}

		pos := scopegraph.Position{Row: uint32(node.StartPosition().Row), Column: uint32(node.StartPosition().Column)}
		callerSymbol := enclosingCallerSymbol(g, pos, moduleQualified)

		local := types.NewLocalTypeTracker(ftt)
		if recv := enclosingReceiverClass(cfg, node, source, reg, moduleQualified, importMap); recv != "" {
			local = local.WithReceiver(recv)
		}

		call := resolveCall(cfg, calleeName, pos, moduleQualified, reg, local, importMap, node)
		call.CallerSymbol = callerSymbol
		calls = append(calls, call)

		// Type discovery (Scenario E/F): a constructor call assigned to a
		// variable binds that variable to the constructed class from this
		// point forward, so a later obj.method() call resolves through it.
		if call.Kind == ConstructorCall && call.CalleeSymbol != "" {
			if lhs := assignmentTargetName(node, source); lhs != "" {
				ftt = ftt.With(lhs, call.CalleeSymbol, pos)
			}
		}
		return true
	})

	return calls
}

// assignmentTargetName returns the variable name a constructor-call node is
// being assigned to, if node is the right-hand side of a simple assignment
// or declaration (e.g. `w := NewWidget()`, `const w = new Widget()`).
func assignmentTargetName(node *tree_sitter.Node, source []byte) string {
	parent := node.Parent()
	if parent == nil {
		return ""
	}
	// Go wraps both sides of `w := NewWidget()` in an expression_list.
	if parent.Kind() == "expression_list" && parent.NamedChildCount() == 1 {
		if parent = parent.Parent(); parent == nil {
			return ""
		}
	}
	switch parent.Kind() {
	case "short_var_declaration", "assignment_statement", "assignment_expression", "augmented_assignment_expression":
		if left := parent.ChildByFieldName("left"); left != nil {
			return identifierText(left, source)
		}
	case "variable_declarator":
		if name := parent.ChildByFieldName("name"); name != nil {
			return identifierText(name, source)
		}
	}
	return ""
}

func identifierText(node *tree_sitter.Node, source []byte) string {
	switch node.Kind() {
	case "identifier", "simple_identifier":
		return parser.NodeText(node, source)
	case "expression_list", "identifier_list":
		if node.NamedChildCount() == 1 {
			return identifierText(node.NamedChild(0), source)
		}
	}
	return ""
}

func enclosingCallerSymbol(g *scopegraph.Graph, pos scopegraph.Position, moduleQualified string) string {
	if def, ok := g.EnclosingDefinition(pos); ok {
		return def.SymbolID
	}
	return ModuleCallerSymbol(moduleQualified)
}

// enclosingReceiverClass resolves a Go method's receiver type, or a
// self/this/cls-bound class for other languages, to a class symbol id, so
// method calls inside it can dispatch through the receiver.
func enclosingReceiverClass(
	cfg *lang.LanguageConfig, node *tree_sitter.Node, source []byte,
	reg *Registry, moduleQualified string, importMap map[string]string,
) string {
	if cfg.Language != lang.Go {
		cls := findEnclosingOfKinds(node, cfg.ClassNodeTypes)
		if cls == nil {
			return ""
		}
		nameNode := cls.ChildByFieldName("name")
		if nameNode == nil {
			return ""
		}
		if symID, ok := reg.Resolve(parser.NodeText(nameNode, source), moduleQualified, importMap); ok {
			return symID
		}
		return ""
	}
	enclosing := findEnclosingOfKinds(node, cfg.FunctionNodeTypes)
	if enclosing == nil {
		return ""
	}
	recvNode := enclosing.ChildByFieldName("receiver")
	if recvNode == nil {
		return ""
	}
	typeName := goReceiverTypeName(recvNode, source)
	if typeName == "" {
		return ""
	}
	if symID, ok := reg.Resolve(typeName, moduleQualified, importMap); ok {
		return symID
	}
	return ""
}

func goReceiverTypeName(recvNode *tree_sitter.Node, source []byte) string {
	for i := uint(0); i < recvNode.NamedChildCount(); i++ {
		p := recvNode.NamedChild(i)
		if p == nil || p.Kind() != "parameter_declaration" {
			continue
		}
		typeNode := p.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		text := parser.NodeText(typeNode, source)
		return strings.TrimPrefix(text, "*")
	}
	return ""
}

func findEnclosingOfKinds(node *tree_sitter.Node, kinds []string) *tree_sitter.Node {
	set := map[string]bool{}
	for _, k := range kinds {
		set[k] = true
	}
	p := node.Parent()
	for p != nil {
		if set[p.Kind()] {
			return p
		}
		p = p.Parent()
	}
	return nil
}

func resolveCall(
	cfg *lang.LanguageConfig, calleeName string, pos scopegraph.Position,
	moduleQualified string, reg *Registry, local *types.LocalTypeTracker,
	importMap map[string]string, node *tree_sitter.Node,
) FunctionCall {
	// Python self.method() dispatch.
	if cfg.Language == lang.Python && strings.HasPrefix(calleeName, "self.") {
		if recv, ok := local.Lookup(cfg, "self", types.Position{Row: pos.Row, Column: pos.Column}); ok {
			candidate := qualifiedOf(recv) + "." + strings.TrimPrefix(calleeName, "self.")
			if symID, ok := reg.byQualified[candidate]; ok {
				return FunctionCall{CalleeSymbol: symID, CalleeName: calleeName, Kind: MethodCall, ResolutionMode: "exact", Position: pos}
			}
		}
	}

	// Type-based method dispatch: obj.method() where obj's class is known.
	if idx := strings.IndexByte(calleeName, '.'); idx >= 0 {
		objName, method := calleeName[:idx], calleeName[idx+1:]
		if classSymbol, ok := local.Lookup(cfg, objName, types.Position{Row: pos.Row, Column: pos.Column}); ok {
			candidate := qualifiedOf(classSymbol) + "." + method
			if symID, ok := reg.byQualified[candidate]; ok {
				return FunctionCall{CalleeSymbol: symID, CalleeName: calleeName, Kind: MethodCall, ResolutionMode: "exact", Position: pos}
			}
		}
	}

	if symID, ok := reg.Resolve(calleeName, moduleQualified, importMap); ok {
		kind := classifyResolvedKind(reg, symID, node)
		return FunctionCall{CalleeSymbol: symID, CalleeName: calleeName, Kind: kind, ResolutionMode: "exact", Position: pos}
	}

	if symID, ok := reg.FuzzyResolve(calleeName, moduleQualified); ok {
		kind := classifyResolvedKind(reg, symID, node)
		return FunctionCall{CalleeSymbol: symID, CalleeName: calleeName, Kind: kind, ResolutionMode: "fuzzy", Position: pos}
	}

	return FunctionCall{CalleeSymbol: "", CalleeName: calleeName, Kind: DirectCall, Position: pos}
}

func classifyResolvedKind(reg *Registry, symID string, node *tree_sitter.Node) CallKind {
	kind, _ := reg.Kind(symID)
	switch kind {
	case "constructor", "class", "struct":
		return ConstructorCall
	case "method":
		return MethodCall
	default:
		if node.Kind() == "new_expression" || node.Kind() == "object_creation_expression" {
			return ConstructorCall
		}
		return DirectCall
	}
}

// extractCalleeName follows the teacher's field-lookup ladder
// (function field -> name field -> method+receiver field) for the call
// node kinds registered across the language pack.
func extractCalleeName(node *tree_sitter.Node, source []byte) string {
	if funcNode := node.ChildByFieldName("function"); funcNode != nil {
		switch funcNode.Kind() {
		case "identifier", "selector_expression", "attribute", "member_expression",
			"field_expression", "navigation_expression":
			return parser.NodeText(funcNode, source)
		}
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return parser.NodeText(nameNode, source)
	}
	// new_expression (JS/TS/C++): the constructed type sits in a
	// "constructor" field, not "function"/"name".
	if ctorNode := node.ChildByFieldName("constructor"); ctorNode != nil {
		switch ctorNode.Kind() {
		case "identifier", "member_expression", "nested_type_identifier",
			"generic_type", "type_identifier":
			return parser.NodeText(ctorNode, source)
		}
	}
	// object_creation_expression (Java/C#): the constructed type sits in a
	// "type" field.
	if node.Kind() == "object_creation_expression" || node.Kind() == "new_expression" {
		if typeNode := node.ChildByFieldName("type"); typeNode != nil {
			switch typeNode.Kind() {
			case "identifier", "type_identifier", "generic_name",
				"qualified_identifier", "scoped_identifier", "generic_type":
				return parser.NodeText(typeNode, source)
			}
		}
	}
	if methodNode := node.ChildByFieldName("method"); methodNode != nil {
		if receiver := node.ChildByFieldName("receiver"); receiver != nil {
			return parser.NodeText(receiver, source) + "." + parser.NodeText(methodNode, source)
		}
		return parser.NodeText(methodNode, source)
	}
	if node.Kind() == "call_expression" || node.Kind() == "navigation_expression" {
		if first := node.NamedChild(0); first != nil {
			switch first.Kind() {
			case "identifier", "navigation_expression", "simple_identifier":
				return parser.NodeText(first, source)
			}
		}
	}
	return ""
}
