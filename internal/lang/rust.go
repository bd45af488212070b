package lang

func init() {
	Register(&LanguageConfig{
		Language:       Rust,
		DisplayName:    "Rust",
		FileExtensions: []string{".rs"},

		ScopeNodeKinds: toSet([]string{
			"source_file", "mod_item", "function_item", "impl_item",
			"trait_item", "block", "closure_expression",
		}),
		BlockScopeNodeKinds: toSet([]string{"block"}),

		Definitions: map[string]DefinitionRule{
			"function_item":    {NodeKind: "function_item", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"struct_item":      {NodeKind: "struct_item", Kind: SymbolStruct, Scoping: Hoisted, Namespace: TypeNamespace},
			"enum_item":        {NodeKind: "enum_item", Kind: SymbolEnum, Scoping: Hoisted, Namespace: TypeNamespace},
			"trait_item":       {NodeKind: "trait_item", Kind: SymbolTrait, Scoping: Hoisted, Namespace: TypeNamespace},
			"mod_item":         {NodeKind: "mod_item", Kind: SymbolModule, Scoping: Hoisted, Namespace: ValueNamespace},
			"let_declaration":  {NodeKind: "let_declaration", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
			"parameter":        {NodeKind: "parameter", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
			"const_item":       {NodeKind: "const_item", Kind: SymbolConstant, Scoping: Hoisted, Namespace: ValueNamespace},
			"static_item":      {NodeKind: "static_item", Kind: SymbolConstant, Scoping: Hoisted, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"function_item"},
		ClassNodeTypes:    []string{"struct_item", "enum_item", "trait_item", "impl_item"},
		ModuleNodeTypes:   []string{"source_file", "mod_item"},

		ImportNodeTypes: []string{"use_declaration"},
		CallNodeTypes:   []string{"call_expression", "macro_invocation"},

		ReceiverSynonyms: toSet([]string{"self"}),

		Namespaces:   []Namespace{ValueNamespace, TypeNamespace},
		ExportPolicy: ExportByKeyword,
		// The four visibility forms named in spec.md §6: bare, crate-scoped,
		// super-scoped, path-scoped.
		VisibilityKeywords: []string{"pub", "pub(crate)", "pub(super)", "pub(in"},

		PackageIndicators: []string{"Cargo.toml"},
	})
}
