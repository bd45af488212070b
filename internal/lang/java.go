package lang

func init() {
	Register(&LanguageConfig{
		Language:       Java,
		DisplayName:    "Java",
		FileExtensions: []string{".java"},

		ScopeNodeKinds: toSet([]string{
			"program", "class_declaration", "interface_declaration", "enum_declaration",
			"method_declaration", "constructor_declaration", "block",
		}),
		BlockScopeNodeKinds: toSet([]string{"block"}),

		Definitions: map[string]DefinitionRule{
			"method_declaration":      {NodeKind: "method_declaration", Kind: SymbolMethod, Scoping: Local, Namespace: ValueNamespace},
			"constructor_declaration": {NodeKind: "constructor_declaration", Kind: SymbolConstructor, Scoping: Local, Namespace: ValueNamespace},
			"class_declaration":       {NodeKind: "class_declaration", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"interface_declaration":   {NodeKind: "interface_declaration", Kind: SymbolInterface, Scoping: Hoisted, Namespace: TypeNamespace},
			"enum_declaration":        {NodeKind: "enum_declaration", Kind: SymbolEnum, Scoping: Hoisted, Namespace: TypeNamespace},
			"local_variable_declaration": {NodeKind: "local_variable_declaration", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
			"formal_parameter":        {NodeKind: "formal_parameter", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"method_declaration", "constructor_declaration"},
		ClassNodeTypes:    []string{"class_declaration", "interface_declaration", "enum_declaration"},
		ModuleNodeTypes:   []string{"program"},

		ImportNodeTypes: []string{"import_declaration"},
		CallNodeTypes:   []string{"method_invocation", "object_creation_expression"},

		ReceiverSynonyms: toSet([]string{"this"}),

		Namespaces:   []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy: ExportByKeyword,
		VisibilityKeywords: []string{"public"},
	})
}
