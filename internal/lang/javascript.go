package lang

func init() {
	cfg := jsFamilyConfig(JavaScript, "JavaScript", []string{".js", ".jsx"})
	// Plain JS has no type namespace/interfaces/type aliases.
	cfg.Namespaces = []Namespace{ValueNamespace}
	delete(cfg.Definitions, "interface_declaration")
	delete(cfg.Definitions, "type_alias_declaration")
	cfg.ClassNodeTypes = []string{"class_declaration", "class", "enum_declaration"}
	Register(cfg)
}
