package lang

// jsFamilyConfig builds the shared table for JavaScript, TypeScript and TSX,
// which share a CST shape for everything this engine cares about.
func jsFamilyConfig(l Language, displayName string, exts []string) *LanguageConfig {
	return &LanguageConfig{
		Language:       l,
		DisplayName:    displayName,
		FileExtensions: exts,

		ScopeNodeKinds: toSet([]string{
			"program", "function_declaration", "generator_function_declaration",
			"function_expression", "arrow_function", "method_definition",
			"class_declaration", "class", "statement_block", "for_statement",
			"for_in_statement", "while_statement", "catch_clause",
		}),
		BlockScopeNodeKinds: toSet([]string{
			"statement_block", "for_statement", "for_in_statement", "while_statement", "catch_clause",
		}),

		Definitions: map[string]DefinitionRule{
			"function_declaration":           {NodeKind: "function_declaration", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"generator_function_declaration": {NodeKind: "generator_function_declaration", Kind: SymbolGenerator, Scoping: Hoisted, Namespace: ValueNamespace},
			"class_declaration":              {NodeKind: "class_declaration", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"method_definition":              {NodeKind: "method_definition", Kind: SymbolMethod, Scoping: Local, Namespace: ValueNamespace},
			"lexical_declaration":            {NodeKind: "lexical_declaration", Kind: SymbolLet, Scoping: Local, Namespace: ValueNamespace},
			"variable_declaration":           {NodeKind: "variable_declaration", Kind: SymbolVariable, Scoping: Hoisted, Namespace: ValueNamespace},
			"required_parameter":             {NodeKind: "required_parameter", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
			"interface_declaration":          {NodeKind: "interface_declaration", Kind: SymbolInterface, Scoping: Hoisted, Namespace: TypeNamespace},
			"type_alias_declaration":         {NodeKind: "type_alias_declaration", Kind: SymbolClass, Scoping: Hoisted, Namespace: TypeNamespace},
			"enum_declaration":               {NodeKind: "enum_declaration", Kind: SymbolEnum, Scoping: Hoisted, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{
			"function_declaration", "generator_function_declaration",
			"function_expression", "arrow_function", "method_definition",
		},
		ClassNodeTypes:  []string{"class_declaration", "class", "interface_declaration", "type_alias_declaration", "enum_declaration"},
		ModuleNodeTypes: []string{"program"},

		ImportNodeTypes: []string{"import_statement", "export_statement"},
		CallNodeTypes:   []string{"call_expression", "new_expression"},

		ReceiverSynonyms: toSet([]string{"this"}),

		Namespaces:   []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy: ExportByKeyword,
	}
}

func init() {
	Register(jsFamilyConfig(TypeScript, "TypeScript", []string{".ts"}))
}
