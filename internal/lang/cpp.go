package lang

func init() {
	Register(&LanguageConfig{
		Language:       CPP,
		DisplayName:    "C++",
		FileExtensions: []string{".cpp", ".h", ".hpp", ".cc", ".cxx", ".hxx", ".hh"},

		ScopeNodeKinds: toSet([]string{
			"translation_unit", "namespace_definition", "function_definition",
			"class_specifier", "struct_specifier", "compound_statement",
		}),
		BlockScopeNodeKinds: toSet([]string{"compound_statement"}),

		Definitions: map[string]DefinitionRule{
			"function_definition": {NodeKind: "function_definition", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"class_specifier":     {NodeKind: "class_specifier", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"struct_specifier":    {NodeKind: "struct_specifier", Kind: SymbolStruct, Scoping: Hoisted, Namespace: TypeNamespace},
			"enum_specifier":      {NodeKind: "enum_specifier", Kind: SymbolEnum, Scoping: Hoisted, Namespace: TypeNamespace},
			"declaration":         {NodeKind: "declaration", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"class_specifier", "struct_specifier", "enum_specifier"},
		ModuleNodeTypes:   []string{"translation_unit", "namespace_definition"},

		ImportNodeTypes: []string{"preproc_include"},
		CallNodeTypes:   []string{"call_expression", "new_expression"},

		ReceiverSynonyms: toSet([]string{"this"}),

		Namespaces:        []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy:      ExportAlways,
		PackageIndicators: []string{"CMakeLists.txt", "Makefile"},
	})
}
