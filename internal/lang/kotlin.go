package lang

func init() {
	Register(&LanguageConfig{
		Language:       Kotlin,
		DisplayName:    "Kotlin",
		FileExtensions: []string{".kt", ".kts"},

		ScopeNodeKinds: toSet([]string{
			"source_file", "class_declaration", "object_declaration", "companion_object",
			"function_declaration", "anonymous_function", "secondary_constructor", "block",
		}),
		BlockScopeNodeKinds: toSet([]string{"block"}),

		Definitions: map[string]DefinitionRule{
			"function_declaration":  {NodeKind: "function_declaration", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"secondary_constructor": {NodeKind: "secondary_constructor", Kind: SymbolConstructor, Scoping: Local, Namespace: ValueNamespace},
			"anonymous_function":    {NodeKind: "anonymous_function", Kind: SymbolFunction, Scoping: Local, Namespace: ValueNamespace},
			"class_declaration":     {NodeKind: "class_declaration", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"object_declaration":    {NodeKind: "object_declaration", Kind: SymbolModule, Scoping: Hoisted, Namespace: TypeNamespace},
			"companion_object":      {NodeKind: "companion_object", Kind: SymbolModule, Scoping: Hoisted, Namespace: TypeNamespace},
			"property_declaration":  {NodeKind: "property_declaration", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"function_declaration", "secondary_constructor", "anonymous_function"},
		ClassNodeTypes:    []string{"class_declaration", "object_declaration", "companion_object"},
		ModuleNodeTypes:   []string{"source_file"},

		ImportNodeTypes: []string{"import"},
		CallNodeTypes:   []string{"call_expression", "navigation_expression"},

		ReceiverSynonyms: toSet([]string{"this"}),

		Namespaces:         []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy:       ExportByKeyword,
		VisibilityKeywords: []string{"public"},
	})
}
