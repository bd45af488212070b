package lang

func init() {
	Register(&LanguageConfig{
		Language:       Lua,
		DisplayName:    "Lua",
		FileExtensions: []string{".lua"},

		// Lua has no class node at the grammar level; tables-as-objects are
		// conventional, not syntactic, so this engine only tracks functions.
		ScopeNodeKinds: toSet([]string{
			"chunk", "function_declaration", "function_definition", "do_statement",
		}),
		BlockScopeNodeKinds: toSet([]string{"do_statement"}),

		Definitions: map[string]DefinitionRule{
			"function_declaration": {NodeKind: "function_declaration", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"function_definition":  {NodeKind: "function_definition", Kind: SymbolFunction, Scoping: Local, Namespace: ValueNamespace},
			"local_variable_declaration": {NodeKind: "local_variable_declaration", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"function_declaration", "function_definition"},
		ModuleNodeTypes:   []string{"chunk"},

		ImportNodeTypes: []string{"function_call"}, // require(...) has no dedicated import node kind
		CallNodeTypes:   []string{"function_call"},

		ReceiverSynonyms: toSet([]string{"self"}),

		Namespaces:        []Namespace{ValueNamespace},
		ExportPolicy:       ExportAlways,
		PackageIndicators: []string{"*.rockspec"},
	})
}
