package lang

func init() {
	Register(&LanguageConfig{
		Language:       Go,
		DisplayName:    "Go",
		FileExtensions: []string{".go"},

		ScopeNodeKinds: toSet([]string{
			"source_file", "function_declaration", "method_declaration",
			"func_literal", "block", "if_statement", "for_statement",
			"switch_statement", "type_switch_statement", "select_statement",
		}),
		BlockScopeNodeKinds: toSet([]string{
			"block", "if_statement", "for_statement",
			"switch_statement", "type_switch_statement", "select_statement",
		}),

		Definitions: map[string]DefinitionRule{
			"function_declaration":  {NodeKind: "function_declaration", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"method_declaration":    {NodeKind: "method_declaration", Kind: SymbolMethod, Scoping: Hoisted, Namespace: ValueNamespace},
			"type_spec":             {NodeKind: "type_spec", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"const_spec":            {NodeKind: "const_spec", Kind: SymbolConst, Scoping: Hoisted, Namespace: ValueNamespace},
			"var_spec":              {NodeKind: "var_spec", Kind: SymbolVariable, Scoping: Hoisted, Namespace: ValueNamespace},
			"short_var_declaration": {NodeKind: "short_var_declaration", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
			"parameter_declaration": {NodeKind: "parameter_declaration", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"function_declaration", "method_declaration"},
		ClassNodeTypes:    []string{"type_spec"},
		ModuleNodeTypes:   []string{"source_file"},

		ImportNodeTypes: []string{"import_declaration"},
		CallNodeTypes:   []string{"call_expression"},

		ReceiverSynonyms: map[string]bool{}, // Go has no fixed receiver keyword; bound per-method via its receiver clause

		Namespaces:   []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy: ExportByConvention,
	})
}
