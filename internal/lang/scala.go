package lang

func init() {
	Register(&LanguageConfig{
		Language:       Scala,
		DisplayName:    "Scala",
		FileExtensions: []string{".scala"},

		ScopeNodeKinds: toSet([]string{
			"compilation_unit", "class_definition", "object_definition", "trait_definition",
			"function_definition", "block",
		}),
		BlockScopeNodeKinds: toSet([]string{"block"}),

		Definitions: map[string]DefinitionRule{
			"function_definition": {NodeKind: "function_definition", Kind: SymbolMethod, Scoping: Local, Namespace: ValueNamespace},
			"class_definition":    {NodeKind: "class_definition", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"object_definition":   {NodeKind: "object_definition", Kind: SymbolModule, Scoping: Hoisted, Namespace: TypeNamespace},
			"trait_definition":    {NodeKind: "trait_definition", Kind: SymbolTrait, Scoping: Hoisted, Namespace: TypeNamespace},
			"val_definition":      {NodeKind: "val_definition", Kind: SymbolConst, Scoping: Local, Namespace: ValueNamespace},
			"var_definition":      {NodeKind: "var_definition", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"function_definition", "function_declaration"},
		ClassNodeTypes:    []string{"class_definition", "object_definition", "trait_definition"},
		ModuleNodeTypes:   []string{"compilation_unit"},

		ImportNodeTypes: []string{"import_declaration"},
		CallNodeTypes:   []string{"call_expression", "field_expression"},

		ReceiverSynonyms: toSet([]string{"this"}),

		Namespaces:   []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy: ExportByConvention, // no `private` keyword means public in Scala
	})
}
