package lang

func init() {
	Register(&LanguageConfig{
		Language:       CSharp,
		DisplayName:    "C#",
		FileExtensions: []string{".cs"},

		ScopeNodeKinds: toSet([]string{
			"compilation_unit", "class_declaration", "struct_declaration",
			"interface_declaration", "method_declaration", "constructor_declaration",
			"block",
		}),
		BlockScopeNodeKinds: toSet([]string{"block"}),

		Definitions: map[string]DefinitionRule{
			"method_declaration":      {NodeKind: "method_declaration", Kind: SymbolMethod, Scoping: Local, Namespace: ValueNamespace},
			"constructor_declaration": {NodeKind: "constructor_declaration", Kind: SymbolConstructor, Scoping: Local, Namespace: ValueNamespace},
			"class_declaration":       {NodeKind: "class_declaration", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"struct_declaration":      {NodeKind: "struct_declaration", Kind: SymbolStruct, Scoping: Hoisted, Namespace: TypeNamespace},
			"interface_declaration":   {NodeKind: "interface_declaration", Kind: SymbolInterface, Scoping: Hoisted, Namespace: TypeNamespace},
			"enum_declaration":        {NodeKind: "enum_declaration", Kind: SymbolEnum, Scoping: Hoisted, Namespace: TypeNamespace},
		},

		FunctionNodeTypes: []string{"method_declaration", "constructor_declaration"},
		ClassNodeTypes:    []string{"class_declaration", "struct_declaration", "interface_declaration", "enum_declaration"},
		ModuleNodeTypes:   []string{"compilation_unit"},

		ImportNodeTypes: []string{"using_directive"},
		CallNodeTypes:   []string{"invocation_expression", "object_creation_expression"},

		ReceiverSynonyms: toSet([]string{"this"}),

		Namespaces:         []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy:       ExportByKeyword,
		VisibilityKeywords: []string{"public"},
	})
}
