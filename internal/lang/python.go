package lang

func init() {
	Register(&LanguageConfig{
		Language:       Python,
		DisplayName:    "Python",
		FileExtensions: []string{".py"},

		ScopeNodeKinds: toSet([]string{
			"module", "function_definition", "class_definition", "lambda",
			"list_comprehension", "dictionary_comprehension", "set_comprehension",
			"generator_expression",
		}),
		// Python's if/for/while/with/try bodies do not introduce a new
		// scope; only functions, classes, lambdas and comprehensions do.
		BlockScopeNodeKinds: toSet([]string{}),

		Definitions: map[string]DefinitionRule{
			"function_definition": {NodeKind: "function_definition", Kind: SymbolFunction, Scoping: Hoisted, Namespace: ValueNamespace},
			"class_definition":    {NodeKind: "class_definition", Kind: SymbolClass, Scoping: Hoisted, Namespace: ValueNamespace},
			"parameter":           {NodeKind: "parameter", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
			"default_parameter":   {NodeKind: "default_parameter", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
			"typed_parameter":     {NodeKind: "typed_parameter", Kind: SymbolVariable, Scoping: Local, Namespace: ValueNamespace},
		},

		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"class_definition"},
		ModuleNodeTypes:   []string{"module"},

		ImportNodeTypes: []string{"import_statement", "import_from_statement"},
		CallNodeTypes:   []string{"call", "with_statement"},

		ReceiverSynonyms: toSet([]string{"self", "cls"}),

		Namespaces:        []Namespace{ValueNamespace},
		ExportPolicy:      ExportByConvention,
		PackageIndicators: []string{"__init__.py"},
	})
}
