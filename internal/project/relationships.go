package project

import (
	"context"
	"strings"

	"github.com/scopeforge/codegraph/internal/scopegraph"
)

// ClassRelationships is the public view of one class's parent and
// implemented/trait interfaces, each resolved to the defining node when
// possible.
type ClassRelationships struct {
	Parent     *scopegraph.Node
	Interfaces []scopegraph.Node
}

// GetClassRelationships returns defSymbolID's direct parent and
// implemented interfaces.
func (p *Project) GetClassRelationships(defSymbolID string) ClassRelationships {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.ensureAnalysis(context.Background())
	rel, ok := snap.inheritance[defSymbolID]
	if !ok {
		return ClassRelationships{}
	}
	out := ClassRelationships{}
	if rel.ParentSymbol != "" {
		if n, ok := p.definitionBySymbol(rel.ParentSymbol); ok {
			out.Parent = &n
		}
	}
	for _, sym := range rel.InterfaceSymbols {
		if n, ok := p.definitionBySymbol(sym); ok {
			out.Interfaces = append(out.Interfaces, n)
		}
	}
	return out
}

func (p *Project) definitionBySymbol(symbolID string) (scopegraph.Node, bool) {
	for _, path := range p.sortedPaths() {
		for _, d := range p.graphs[path].Definitions() {
			if d.SymbolID == symbolID {
				return d, true
			}
		}
	}
	return scopegraph.Node{}, false
}

// FindSubclasses returns every class-like definition whose direct parent
// is defSymbolID.
func (p *Project) FindSubclasses(defSymbolID string) []scopegraph.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.ensureAnalysis(context.Background())
	var out []scopegraph.Node
	for sym, rel := range snap.inheritance {
		if rel.ParentSymbol != defSymbolID {
			continue
		}
		if n, ok := p.definitionBySymbolLocked(sym); ok {
			out = append(out, n)
		}
	}
	return out
}

// FindImplementations returns every class-like definition that lists
// defSymbolID among its implemented interfaces.
func (p *Project) FindImplementations(defSymbolID string) []scopegraph.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.ensureAnalysis(context.Background())
	var out []scopegraph.Node
	for sym, rel := range snap.inheritance {
		for _, iface := range rel.InterfaceSymbols {
			if iface == defSymbolID {
				if n, ok := p.definitionBySymbolLocked(sym); ok {
					out = append(out, n)
				}
				break
			}
		}
	}
	return out
}

func (p *Project) definitionBySymbolLocked(symbolID string) (scopegraph.Node, bool) {
	return p.definitionBySymbol(symbolID)
}

// GetInheritanceChain returns defSymbolID followed by each ancestor in
// order (parent, grandparent, ...), stopping at the first class with no
// recorded parent or at a cycle.
func (p *Project) GetInheritanceChain(defSymbolID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.ensureAnalysis(context.Background())

	chain := []string{defSymbolID}
	seen := map[string]bool{defSymbolID: true}
	current := defSymbolID
	for {
		rel, ok := snap.inheritance[current]
		if !ok || rel.ParentSymbol == "" || seen[rel.ParentSymbol] {
			break
		}
		chain = append(chain, rel.ParentSymbol)
		seen[rel.ParentSymbol] = true
		current = rel.ParentSymbol
	}
	return chain
}

// IsSubclassOf reports whether a's inheritance chain includes b.
func (p *Project) IsSubclassOf(a, b string) bool {
	chain := p.GetInheritanceChain(a)
	for _, sym := range chain[1:] {
		if sym == b {
			return true
		}
	}
	return false
}

// GetSourceWithContext returns the source text of def's enclosing range in
// path, expanded by a few lines of surrounding context on each side (the
// engine's ContextExtraction hook is per-definition signature/docstring
// text; this returns the raw source slice a caller can display alongside
// it).
func (p *Project) GetSourceWithContext(def scopegraph.Node, path string, contextLines int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.cache.Get(path)
	if !ok {
		return ""
	}
	rng := def.Range
	if def.EnclosingRange != nil {
		rng = *def.EnclosingRange
	}
	lines := strings.Split(string(f.Text), "\n")

	start := int(rng.Start.Row) - contextLines
	if start < 0 {
		start = 0
	}
	end := int(rng.End.Row) + contextLines
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if start > end || start >= len(lines) {
		return ""
	}
	return strings.Join(lines[start:end+1], "\n")
}
