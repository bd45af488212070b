// Package lang binds a file extension to a grammar and a declarative scope
// query: the node-kind tables that tell the scope-graph builder (package
// scopegraph) where scopes, definitions, imports, references, and calls live
// in a given language's concrete syntax tree.
package lang

// Language identifies one of the host languages this engine understands.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Go         Language = "go"
	Rust       Language = "rust"
	Java       Language = "java"
	CPP        Language = "cpp"
	CSharp     Language = "c-sharp"
	PHP        Language = "php"
	Lua        Language = "lua"
	Scala      Language = "scala"
	Kotlin     Language = "kotlin"
)

// AllLanguages returns every registered language in a stable order.
func AllLanguages() []Language {
	return []Language{
		Python, JavaScript, TypeScript, TSX, Go, Rust, Java, CPP, CSharp, PHP, Lua, Scala, Kotlin,
	}
}

// Namespace names a symbol space (e.g. "value" vs "type"). Language
// configs and definition rules carry namespaces, but reference
// resolution does not consult them: a reference resolves against
// definitions of every namespace.
type Namespace string

const (
	ValueNamespace Namespace = "value"
	TypeNamespace  Namespace = "type"
)

// SymbolKind enumerates the kinds of definitions the builder can produce.
// Mirrors the Definition.symbol_kind vocabulary.
type SymbolKind string

const (
	SymbolFunction    SymbolKind = "function"
	SymbolMethod      SymbolKind = "method"
	SymbolGenerator   SymbolKind = "generator"
	SymbolClass       SymbolKind = "class"
	SymbolVariable    SymbolKind = "variable"
	SymbolConst       SymbolKind = "const"
	SymbolLet         SymbolKind = "let"
	SymbolConstant    SymbolKind = "constant"
	SymbolImport      SymbolKind = "import"
	SymbolConstructor SymbolKind = "constructor"
	SymbolStruct      SymbolKind = "struct"
	SymbolEnum        SymbolKind = "enum"
	SymbolInterface   SymbolKind = "interface"
	SymbolTrait       SymbolKind = "trait"
	SymbolModule      SymbolKind = "module"
)

// ScopingPolicy controls which enclosing scope a definition is inserted
// into, per spec: Local (innermost), Hoisted (innermost non-block), Global
// (root).
type ScopingPolicy string

const (
	Local  ScopingPolicy = "local"
	Hoisted ScopingPolicy = "hoisted"
	Global ScopingPolicy = "global"
)

// DefinitionRule maps a CST node kind producing a definition to the symbol
// kind it introduces and the scoping policy that places it.
type DefinitionRule struct {
	NodeKind  string
	Kind      SymbolKind
	Scoping   ScopingPolicy
	Namespace Namespace
}

// ExportPolicyKind selects which export-detection strategy §6 assigns to a
// language.
type ExportPolicyKind string

const (
	// ExportByKeyword: an explicit export/pub-like keyword or clause marks
	// the definition exported (JS/TS export, Rust pub variants).
	ExportByKeyword ExportPolicyKind = "keyword"
	// ExportByConvention: name shape decides (Go leading-capital, Python
	// no-leading-underscore, Scala no leading `private` modifier). A Python
	// module's `__all__` list is not read.
	ExportByConvention ExportPolicyKind = "convention"
	// ExportAlways: every top-level definition counts as exported (used
	// for languages without a first-class visibility story in this engine).
	ExportAlways ExportPolicyKind = "always"
)

// ContextExtraction is the optional per-language hook that pulls a
// docstring and decorator list out of a definition's surrounding CST, given
// the raw source split into lines and the definition's start line.
type ContextExtraction func(sourceLines []string, startLine int) (docstring string, decorators []string)

// LanguageConfig is a LanguageSpec extended with the capture-producing
// scope-query tables spec.md §4.2 requires.
type LanguageConfig struct {
	Language       Language
	DisplayName    string
	FileExtensions []string

	// ScopeNodeKinds creates a new lexical scope rooted at a node of this
	// kind ("local.scope" captures).
	ScopeNodeKinds map[string]bool
	// BlockScopeNodeKinds is the subset of ScopeNodeKinds considered
	// "block" scopes for Hoisted-policy walk-up (e.g. if/for/while bodies,
	// as opposed to function/class/module scopes).
	BlockScopeNodeKinds map[string]bool

	// Definitions maps a CST node kind to the definition rule it produces.
	Definitions map[string]DefinitionRule

	// FunctionNodeTypes / ClassNodeTypes are the node kinds whose
	// definitions get an enclosing_range computed and are candidate
	// call-graph nodes.
	FunctionNodeTypes []string
	ClassNodeTypes    []string
	ModuleNodeTypes   []string

	// ImportNodeTypes are node kinds that introduce one or more imports.
	ImportNodeTypes []string

	// CallNodeTypes are node kinds classified by the call-graph analyzer.
	CallNodeTypes []string

	// ReceiverSynonyms are identifiers that refer to the enclosing
	// instance (this/self/cls and language-specific equivalents).
	ReceiverSynonyms map[string]bool

	// Namespaces lists the disjoint symbol spaces this language's
	// references may be tagged with.
	Namespaces []Namespace

	// ExportPolicy selects the §6 export-detection strategy.
	ExportPolicy ExportPolicyKind

	// VisibilityKeywords recognizes explicit visibility keywords/modifiers
	// for ExportByKeyword languages (e.g. Rust's "pub", "pub(crate)").
	VisibilityKeywords []string

	// PackageIndicators are file names that mark a directory as a
	// language-level package root (e.g. __init__.py).
	PackageIndicators []string

	// ExtractContext is the optional docstring/decorator hook.
	ExtractContext ContextExtraction
}

var registry = map[string]*LanguageConfig{}
var byLanguage = map[Language]*LanguageConfig{}

// Register adds a LanguageConfig to the global registry, keyed by every
// extension it declares.
func Register(cfg *LanguageConfig) {
	for _, ext := range cfg.FileExtensions {
		registry[ext] = cfg
	}
	byLanguage[cfg.Language] = cfg
}

// ForExtension returns the LanguageConfig for a file extension (e.g. ".go").
// Binding is total: an unregistered extension returns nil, and callers must
// treat that as "cache the file, build no graph" per spec.md §4.2.
func ForExtension(ext string) *LanguageConfig {
	return registry[ext]
}

// ForLanguage returns the LanguageConfig for a Language.
func ForLanguage(l Language) *LanguageConfig {
	return byLanguage[l]
}

// LanguageForExtension returns the Language bound to an extension, if any.
func LanguageForExtension(ext string) (Language, bool) {
	cfg := registry[ext]
	if cfg == nil {
		return "", false
	}
	return cfg.Language, true
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}
