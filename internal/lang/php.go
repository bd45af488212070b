package lang

func init() {
	Register(&LanguageConfig{
		Language:       PHP,
		DisplayName:    "PHP",
		FileExtensions: []string{".php"},

		ScopeNodeKinds: toSet([]string{
			"program", "class_declaration", "interface_declaration", "trait_declaration",
			"enum_declaration", "function_definition", "method_declaration",
			"arrow_function", "compound_statement",
		}),
		BlockScopeNodeKinds: toSet([]string{"compound_statement"}),

		Definitions: map[string]DefinitionRule{
			"function_definition":   {NodeKind: "function_definition", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"method_declaration":    {NodeKind: "method_declaration", Kind: SymbolMethod, Scoping: Local, Namespace: ValueNamespace},
			"arrow_function":        {NodeKind: "arrow_function", Kind: SymbolFunction, Scoping: Local, Namespace: ValueNamespace},
			"class_declaration":     {NodeKind: "class_declaration", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"interface_declaration": {NodeKind: "interface_declaration", Kind: SymbolInterface, Scoping: Hoisted, Namespace: TypeNamespace},
			"trait_declaration":     {NodeKind: "trait_declaration", Kind: SymbolTrait, Scoping: Hoisted, Namespace: TypeNamespace},
			"enum_declaration":      {NodeKind: "enum_declaration", Kind: SymbolEnum, Scoping: Hoisted, Namespace: TypeNamespace},
		},

		FunctionNodeTypes: []string{"function_definition", "arrow_function", "method_declaration"},
		ClassNodeTypes:    []string{"trait_declaration", "enum_declaration", "interface_declaration", "class_declaration"},
		ModuleNodeTypes:   []string{"program"},

		ImportNodeTypes: []string{"namespace_use_declaration"},
		CallNodeTypes:   []string{"member_call_expression", "scoped_call_expression", "function_call_expression"},

		ReceiverSynonyms: toSet([]string{"this"}),

		Namespaces:         []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy:       ExportByKeyword,
		VisibilityKeywords: []string{"public"},
	})
}
