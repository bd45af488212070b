// Package types implements the type tracker (C6): a per-file, per-scope
// variable-to-class mapping used to resolve method calls like obj.method()
// to ClassName.method, plus a project-wide registry of known classes,
// indexed by symbol id and by simple name.
//
// Unlike the teacher's single mutable TypeMap (internal/pipeline/
// typeinfer.go, map[string]string threaded through one file's walk), every
// type here is immutable: each With* method returns a new value sharing
// the old one's backing data rather than mutating it. Phase-1 analysis
// runs one goroutine per file (internal/project); a shared mutable map
// would need its own lock and would serialize every type-inference write
// across files. Value semantics make that impossible by construction, at
// the cost of an O(bindings) copy per update — acceptable since a single
// file's binding count is small and bounded by its own size.
package types

import "github.com/scopeforge/codegraph/internal/lang"

// Position mirrors scopegraph.Position without importing it, to keep this
// package's dependency surface one level below scopegraph.
type Position struct {
	Row    uint32
	Column uint32
}

func before(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

// Binding records that, as of Position, a variable named Name held values
// of class ClassSymbol (a symbol id).
type Binding struct {
	Name        string
	ClassSymbol string
	Position    Position
}

// FileTypeTracker is an immutable, position-ordered record of every
// variable-to-class binding observed in one file. Because a variable can
// be reassigned to a different class, lookups are position-sensitive:
// LookupAt returns the binding nearest to but not after the query
// position (Scenario F: reassignment-sensitive resolution).
type FileTypeTracker struct {
	bindings []Binding
}

// NewFileTypeTracker returns an empty tracker.
func NewFileTypeTracker() *FileTypeTracker {
	return &FileTypeTracker{}
}

// With returns a new tracker with one additional binding. The receiver is
// never mutated.
func (t *FileTypeTracker) With(name, classSymbol string, pos Position) *FileTypeTracker {
	next := make([]Binding, len(t.bindings), len(t.bindings)+1)
	copy(next, t.bindings)
	next = append(next, Binding{Name: name, ClassSymbol: classSymbol, Position: pos})
	return &FileTypeTracker{bindings: next}
}

// LookupAt returns the most recent binding for name at or before pos. If a
// variable was reassigned to a different class later in the file, a query
// at an earlier position still sees the class it held there.
func (t *FileTypeTracker) LookupAt(name string, pos Position) (string, bool) {
	var best Binding
	found := false
	for _, b := range t.bindings {
		if b.Name != name {
			continue
		}
		if before(pos, b.Position) {
			continue
		}
		if !found || before(best.Position, b.Position) {
			best = b
			found = true
		}
	}
	if !found {
		return "", false
	}
	return best.ClassSymbol, true
}

// LocalTypeTracker layers receiver-synonym bindings (this/self/cls →
// the enclosing class) on top of a FileTypeTracker, scoped to one
// function/method body. It is immutable for the same reason: phase-1
// resolves every call site of a file concurrently with every other file's,
// and a method body's receiver binding must not leak into a sibling
// method's tracker.
type LocalTypeTracker struct {
	file          *FileTypeTracker
	receiverClass string
	hasReceiver   bool
}

func NewLocalTypeTracker(file *FileTypeTracker) *LocalTypeTracker {
	return &LocalTypeTracker{file: file}
}

// WithReceiver returns a tracker that additionally resolves any of cfg's
// receiver synonyms (this/self/cls) to classSymbol.
func (t *LocalTypeTracker) WithReceiver(classSymbol string) *LocalTypeTracker {
	return &LocalTypeTracker{file: t.file, receiverClass: classSymbol, hasReceiver: true}
}

// Lookup resolves name at pos, checking receiver synonyms first.
func (t *LocalTypeTracker) Lookup(cfg *lang.LanguageConfig, name string, pos Position) (string, bool) {
	if t.hasReceiver && cfg != nil && cfg.ReceiverSynonyms[name] {
		return t.receiverClass, true
	}
	return t.file.LookupAt(name, pos)
}

// ClassInfo is what the project registry knows about one class-like
// definition: its symbol id, its simple name and the file defining it.
type ClassInfo struct {
	SymbolID string
	Name     string
	FilePath string
}

// ProjectTypeRegistry is an immutable, project-wide index of every known
// class-like definition, keyed by simple name and by symbol id.
// internal/callgraph's resolution ladder uses its own Registry, not this
// one.
type ProjectTypeRegistry struct {
	bySymbol map[string]ClassInfo
	byName   map[string][]ClassInfo
}

func NewProjectTypeRegistry() *ProjectTypeRegistry {
	return &ProjectTypeRegistry{
		bySymbol: map[string]ClassInfo{},
		byName:   map[string][]ClassInfo{},
	}
}

// With returns a new registry with one additional class, sharing the
// receiver's entries rather than mutating them.
func (r *ProjectTypeRegistry) With(info ClassInfo) *ProjectTypeRegistry {
	bySymbol := make(map[string]ClassInfo, len(r.bySymbol)+1)
	for k, v := range r.bySymbol {
		bySymbol[k] = v
	}
	bySymbol[info.SymbolID] = info

	byName := make(map[string][]ClassInfo, len(r.byName))
	for k, v := range r.byName {
		byName[k] = v
	}
	byName[info.Name] = append(append([]ClassInfo{}, byName[info.Name]...), info)

	return &ProjectTypeRegistry{bySymbol: bySymbol, byName: byName}
}

// Get returns the class registered under a symbol id.
func (r *ProjectTypeRegistry) Get(symbolID string) (ClassInfo, bool) {
	info, ok := r.bySymbol[symbolID]
	return info, ok
}

// ByName returns every class registered under a simple name.
func (r *ProjectTypeRegistry) ByName(name string) []ClassInfo {
	return r.byName[name]
}

// Merge folds another registry's entries into a new registry.
func (r *ProjectTypeRegistry) Merge(other *ProjectTypeRegistry) *ProjectTypeRegistry {
	result := r
	for _, info := range other.bySymbol {
		result = result.With(info)
	}
	return result
}
