// Package project implements the project coordinator (C8): the stable
// public surface the rest of this engine is built to serve, wiring
// together the source cache (C1), language registry (C2), scope graph
// builder/resolver (C3/C4), import resolver (C5), type tracker (C6), and
// call-graph analyzer (C7) into one coherent view of a codebase.
//
// Grounded on the teacher's Pipeline (internal/pipeline/pipeline.go): the
// same "discover, analyze, resolve cross-file, materialize" shape, but
// collapsed from the teacher's three DB-backed passes into the spec's
// two in-memory phases (phase 1 per file, phase 2 a deterministic
// cross-file merge), and mutated behind a single mutex rather than a SQL
// transaction, per spec.md §5's single-threaded-mutator scheduling model.
package project

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/scopeforge/codegraph/internal/callgraph"
	"github.com/scopeforge/codegraph/internal/diag"
	"github.com/scopeforge/codegraph/internal/fqn"
	"github.com/scopeforge/codegraph/internal/imports"
	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/scopegraph"
	"github.com/scopeforge/codegraph/internal/source"
	"github.com/scopeforge/codegraph/internal/types"
)

// Project is the mutable coordinator. Its public methods are safe for
// sequential use by one caller; concurrent callers must serialize their
// own access (spec.md §5: "single-threaded cooperative for the public
// API"). Internally, phase-1 file analysis during a full rebuild runs a
// bounded worker pool (errgroup.SetLimit(runtime.NumCPU())), mirroring
// the teacher's passCalls/buildRegistry concurrency pattern.
type Project struct {
	mu sync.Mutex

	cache  *source.Cache
	graphs map[string]*scopegraph.Graph
	sink   diag.Sink

	analysis *snapshot
}

// snapshot is the cached result of the last full analysis pass: the
// project-wide call registry, per-file import maps, the materialized call
// list, and the inheritance map. It is rebuilt lazily the next time a
// query needs it after a mutation invalidates it (analysis == nil).
type snapshot struct {
	registry    *callgraph.Registry
	classes     *types.ProjectTypeRegistry
	importMaps  map[string]map[string]string // path -> localName -> resolved module path
	calls       []callgraph.FunctionCall
	inheritance map[string]classRelationship // class symbol id -> relationship
}

// New returns an empty project. sink receives diagnostics emitted while
// parsing files (FileTooLarge, ParseIncomplete); pass nil
// to discard them.
func New(sink diag.Sink) *Project {
	return &Project{
		cache:  source.NewCache(),
		graphs: make(map[string]*scopegraph.Graph),
		sink:   sink,
	}
}

// AddOrUpdateFile parses text, rebuilds path's scope graph, and
// invalidates the cross-file analysis cache.
func (p *Project) AddOrUpdateFile(path string, text []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, err := p.cache.AddOrUpdate(path, []byte(text), p.sink)
	if err != nil {
		return err
	}
	p.rebuildFileGraph(path, f)
	p.analysis = nil
	return nil
}

// UpdateFileRange applies an incremental edit and rebuilds path's scope
// graph from the reparsed tree. The scope graph is always rebuilt fresh,
// never patched in place (spec.md §4.1: bounding rebuild cost by file size
// is simpler than patch correctness).
func (p *Project) UpdateFileRange(path string, edit tree_sitter.InputEdit, newText []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, err := p.cache.UpdateRange(path, edit, newText, p.sink)
	if err != nil {
		return err
	}
	p.rebuildFileGraph(path, f)
	p.analysis = nil
	return nil
}

// RemoveFile drops a file from the cache and its scope graph.
func (p *Project) RemoveFile(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.Remove(path)
	delete(p.graphs, path)
	p.analysis = nil
}

func (p *Project) rebuildFileGraph(path string, f *source.File) {
	if !f.Parsed || f.Tree == nil {
		delete(p.graphs, path)
		return
	}
	cfg := lang.ForLanguage(f.Language)
	if cfg == nil {
		delete(p.graphs, path)
		return
	}
	p.graphs[path] = scopegraph.Build(f.Tree, cfg, path, f.Text)
}

// GetScopeGraph returns path's scope graph, if it has one (none for an
// unregistered extension, an over-size file, or an unknown path).
func (p *Project) GetScopeGraph(path string) (*scopegraph.Graph, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.graphs[path]
	return g, ok
}

// GoToDefinition resolves the reference at pos in path to its target
// definition. A ref_to_import target is followed through the import
// resolver to the exported definition in the source file.
func (p *Project) GoToDefinition(path string, pos scopegraph.Position) (scopegraph.Node, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.graphs[path]
	if !ok {
		return scopegraph.Node{}, false
	}
	target, ok := g.GoToDefinition(pos)
	if !ok {
		return scopegraph.Node{}, false
	}
	if target.Kind != scopegraph.ImportNode {
		return target, true
	}

	cfg := p.languageOf(path)
	if cfg == nil {
		return scopegraph.Node{}, false
	}
	modulePath := fqn.NormalizeModulePath(path)
	resolved, ok := imports.Resolve(cfg.Language, modulePath, target.SourceModule, p.knownModulePredicate())
	if !ok {
		return scopegraph.Node{}, false
	}
	return p.exportedDefinitionIn(resolved, target)
}

// FindReferences returns every reference pointing at the definition at or
// enclosing pos in path, plus every reference reaching it transitively
// through an import in another file.
func (p *Project) FindReferences(path string, pos scopegraph.Position) []scopegraph.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.graphs[path]
	if !ok {
		return nil
	}
	def, ok := p.definitionAt(g, pos)
	if !ok {
		return nil
	}
	refs := g.FindReferences(def.SymbolID)

	for otherPath, other := range p.graphs {
		if otherPath == path {
			continue
		}
		refs = append(refs, p.crossFileReferences(other, def.SymbolID)...)
	}
	return refs
}

func (p *Project) definitionAt(g *scopegraph.Graph, pos scopegraph.Position) (scopegraph.Node, bool) {
	var best scopegraph.Node
	found := false
	for _, d := range g.Definitions() {
		if within(pos, d.Range) || (d.EnclosingRange != nil && within(pos, *d.EnclosingRange)) {
			if !found || smaller(d.Range, best.Range) {
				best, found = d, true
			}
		}
	}
	return best, found
}

// crossFileReferences finds references in g that resolve, through an
// import, to the definition identified by symbolID in another file.
func (p *Project) crossFileReferences(g *scopegraph.Graph, symbolID string) []scopegraph.Node {
	var out []scopegraph.Node
	modulePath := fqn.NormalizeModulePath(g.FilePath)
	known := p.knownModulePredicate()
	cfg := p.languageOf(g.FilePath)
	if cfg == nil {
		return nil
	}

	pairs := g.ImportsWithDefinitions(func(imp scopegraph.Node) (scopegraph.Node, bool) {
		resolved, ok := imports.Resolve(cfg.Language, modulePath, imp.SourceModule, known)
		if !ok {
			return scopegraph.Node{}, false
		}
		target, tg := p.exportedDefinitionIn(resolved, imp)
		if !tg || target.SymbolID != symbolID {
			return scopegraph.Node{}, false
		}
		return target, true
	})
	for _, pair := range pairs {
		out = append(out, referencesToImport(g, pair.Import)...)
	}
	return out
}

// referencesToImport returns every reference in g whose resolution target
// is the import node imp itself (i.e. a ref_to_import edge to imp.ID),
// found by re-deriving the resolution through GoToDefinition since Node
// does not expose its origin edge directly.
func referencesToImport(g *scopegraph.Graph, imp scopegraph.Node) []scopegraph.Node {
	var out []scopegraph.Node
	for _, ref := range g.Nodes(scopegraph.ReferenceNode) {
		target, ok := g.GoToDefinition(ref.Range.Start)
		if !ok || target.Kind != scopegraph.ImportNode {
			continue
		}
		if target.ID == imp.ID && target.Range == imp.Range {
			out = append(out, ref)
		}
	}
	return out
}

func (p *Project) languageOf(path string) *lang.LanguageConfig {
	f, ok := p.cache.Get(path)
	if !ok || !f.Parsed {
		return nil
	}
	return lang.ForLanguage(f.Language)
}

func (p *Project) knownModulePredicate() func(string) bool {
	known := map[string]bool{}
	for path := range p.graphs {
		known[fqn.NormalizeModulePath(path)] = true
	}
	return func(modulePath string) bool { return known[modulePath] }
}

// exportedDefinitionIn resolves imp (in the importing file) to the
// exported definition with a matching name inside the file at
// resolvedModulePath.
func (p *Project) exportedDefinitionIn(resolvedModulePath string, imp scopegraph.Node) (scopegraph.Node, bool) {
	for path, g := range p.graphs {
		if fqn.NormalizeModulePath(path) != resolvedModulePath {
			continue
		}
		name := imp.SourceName
		if name == "" {
			name = imp.Name
		}
		for _, d := range g.ExportedDefinitions() {
			if d.Name == name {
				return d, true
			}
		}
	}
	return scopegraph.Node{}, false
}

// Paths returns every file path currently known to the project, sorted
// for deterministic iteration.
func (p *Project) Paths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sortedPaths()
}

// GetDefinitions returns every definition in path.
func (p *Project) GetDefinitions(path string) []scopegraph.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.graphs[path]
	if !ok {
		return nil
	}
	return g.Definitions()
}

// GetAllDefinitions returns every definition across every known file,
// sorted by file path for deterministic output.
func (p *Project) GetAllDefinitions() []scopegraph.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []scopegraph.Node
	for _, path := range p.sortedPaths() {
		out = append(out, p.graphs[path].Definitions()...)
	}
	return out
}

// GetExportedFunctions returns path's function-like definitions with
// is_exported = true.
func (p *Project) GetExportedFunctions(path string) []scopegraph.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.graphs[path]
	if !ok {
		return nil
	}
	var out []scopegraph.Node
	for _, d := range g.ExportedDefinitions() {
		if isFunctionLike(d.SymbolKind) {
			out = append(out, d)
		}
	}
	return out
}

// GetFunctionsInFile returns every function-like definition in path.
func (p *Project) GetFunctionsInFile(path string) []scopegraph.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.graphs[path]
	if !ok {
		return nil
	}
	var out []scopegraph.Node
	for _, d := range g.Definitions() {
		if isFunctionLike(d.SymbolKind) {
			out = append(out, d)
		}
	}
	return out
}

func isFunctionLike(kind string) bool {
	switch kind {
	case string(lang.SymbolFunction), string(lang.SymbolMethod), string(lang.SymbolGenerator), string(lang.SymbolConstructor):
		return true
	default:
		return false
	}
}

// GetImportsWithDefinitions returns every import in path paired with the
// exported definition it resolves to; an import with no match is omitted
// (spec.md §7 UnresolvedImport).
func (p *Project) GetImportsWithDefinitions(path string) []struct {
	Import     scopegraph.Node
	Definition scopegraph.Node
} {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.graphs[path]
	if !ok {
		return nil
	}
	cfg := p.languageOf(path)
	if cfg == nil {
		return nil
	}
	modulePath := fqn.NormalizeModulePath(path)
	known := p.knownModulePredicate()
	return g.ImportsWithDefinitions(func(imp scopegraph.Node) (scopegraph.Node, bool) {
		resolved, ok := imports.Resolve(cfg.Language, modulePath, imp.SourceModule, known)
		if !ok {
			return scopegraph.Node{}, false
		}
		return p.exportedDefinitionIn(resolved, imp)
	})
}

func (p *Project) sortedPaths() []string {
	paths := make([]string, 0, len(p.graphs))
	for path := range p.graphs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func within(pos scopegraph.Position, r scopegraph.Range) bool {
	return !posLess(pos, r.Start) && !posLess(r.End, pos)
}

func posLess(a, b scopegraph.Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

func smaller(a, b scopegraph.Range) bool {
	return (a.End.Row - a.Start.Row) < (b.End.Row - b.Start.Row)
}

// ensureAnalysis runs the two-phase call-graph construction if the cached
// snapshot was invalidated by a mutation, and returns it. Phase 1 (per-file
// graph build) has already happened incrementally in AddOrUpdateFile;
// what remains here is phase 2: merge every file's exports into one
// project-wide registry, resolve every file's imports, and materialize
// calls, all as a deterministic, path-sorted reduction (spec.md §5).
func (p *Project) ensureAnalysis(ctx context.Context) *snapshot {
	if p.analysis != nil {
		return p.analysis
	}

	paths := p.sortedPaths()
	reg := callgraph.NewRegistry()
	classes := types.NewProjectTypeRegistry()
	for _, path := range paths {
		g := p.graphs[path]
		for _, d := range g.Definitions() {
			reg.Register(d.Name, d.SymbolID, d.SymbolKind)
			if isClassLike(d.SymbolKind) {
				classes = classes.With(types.ClassInfo{SymbolID: d.SymbolID, Name: d.Name, FilePath: path})
			}
		}
	}

	known := p.knownModulePredicate()
	importMaps := make(map[string]map[string]string, len(paths))
	for _, path := range paths {
		cfg := p.languageOf(path)
		if cfg == nil {
			continue
		}
		modulePath := fqn.NormalizeModulePath(path)
		g := p.graphs[path]
		m := map[string]string{}
		for _, imp := range g.Nodes(scopegraph.ImportNode) {
			resolved, ok := imports.Resolve(cfg.Language, modulePath, imp.SourceModule, known)
			if !ok {
				continue
			}
			local := imp.Name
			if local == "" {
				local = imp.SourceModule
			}
			m[local] = resolved
		}
		importMaps[path] = m
	}

	type result struct {
		path  string
		calls []callgraph.FunctionCall
	}
	results := make([]result, len(paths))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			f, ok := p.cache.Get(path)
			if !ok || !f.Parsed || f.Tree == nil {
				return nil
			}
			cfg := p.languageOf(path)
			if cfg == nil {
				return nil
			}
			moduleQualified := fqn.NormalizeModulePath(path)
			ftt := types.NewFileTypeTracker()
			calls := callgraph.ExtractFileCalls(f.Tree, cfg, f.Text, moduleQualified, reg, ftt, importMaps[path], p.graphs[path])
			results[i] = result{path: path, calls: calls}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Warn("project.analysis.err", "err", err)
	}

	var allCalls []callgraph.FunctionCall
	for _, r := range results {
		allCalls = append(allCalls, r.calls...)
	}

	snap := &snapshot{
		registry:    reg,
		classes:     classes,
		importMaps:  importMaps,
		calls:       allCalls,
		inheritance: p.buildInheritance(reg, importMaps),
	}
	p.analysis = snap
	return snap
}

func isClassLike(kind string) bool {
	switch kind {
	case string(lang.SymbolClass), string(lang.SymbolStruct), string(lang.SymbolInterface),
		string(lang.SymbolTrait), string(lang.SymbolEnum):
		return true
	default:
		return false
	}
}
