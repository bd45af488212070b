// Package callgraph implements the call-graph analyzer (C7): extracting
// caller→callee edges from every file's scope graph, classifying call
// kinds, and answering call-graph projection queries. Call resolution is
// adapted from the teacher's FunctionRegistry (internal/pipeline/
// resolver.go): the same import-map → same-module → unique-simple-name →
// suffix/import-distance ladder, re-keyed on this engine's
// "<module>#<qualified.name>" symbol ids instead of the teacher's bare
// dotted qualified names.
package callgraph

import "strings"

// Registry indexes every known Function/Method/Constructor definition
// across the project by symbol id and by simple name, to support the
// resolution ladder Resolve implements.
type Registry struct {
	// bySymbol maps a full symbol id to its kind ("function", "method", ...).
	bySymbol map[string]string
	// byQualified maps the qualified-name half of a symbol id (after '#',
	// module-free per spec.md §6) back to the full symbol id, for
	// self/receiver-typed method dispatch ("Class.method").
	byQualified map[string]string
	// byModuleQualified maps "<module>.<qualified>" (the module path and
	// the module-free qualified name joined back together) to the full
	// symbol id, for the import-map and same-module resolution rungs,
	// which need to combine a resolved module path with a within-module
	// name to find a candidate.
	byModuleQualified map[string]string
	// byName maps a simple (unqualified) name to every symbol id ending in
	// that name, for the unique-simple-name and suffix-match rungs.
	byName map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		bySymbol:          map[string]string{},
		byQualified:       map[string]string{},
		byModuleQualified: map[string]string{},
		byName:            map[string][]string{},
	}
}

// Register adds one definition to the registry. name is its simple name,
// symbolID its full "<module>#<qualified>" id, kind its symbol kind.
func (r *Registry) Register(name, symbolID, kind string) {
	if _, exists := r.bySymbol[symbolID]; exists {
		return
	}
	r.bySymbol[symbolID] = kind

	if idx := strings.IndexByte(symbolID, '#'); idx >= 0 {
		module := symbolID[:idx]
		qualified := symbolID[idx+1:]
		r.byQualified[qualified] = symbolID
		r.byModuleQualified[module+"."+qualified] = symbolID
	}

	r.byName[name] = append(r.byName[name], symbolID)
}

func (r *Registry) Exists(symbolID string) bool {
	_, ok := r.bySymbol[symbolID]
	return ok
}

func (r *Registry) Kind(symbolID string) (string, bool) {
	k, ok := r.bySymbol[symbolID]
	return k, ok
}

// Resolve attempts to find the symbol id of a callee, given the name as
// written at the call site, the calling module's dotted path, and that
// module's import map (local alias -> resolved module path). The ladder,
// in priority order:
//  1. import map lookup (qualified or direct)
//  2. same-module match
//  3. project-wide unique match by simple name
//  4. suffix match, tie-broken by import distance
func (r *Registry) Resolve(calleeName, moduleQualified string, importMap map[string]string) (string, bool) {
	prefix, suffix, hasSuffix := splitCallee(calleeName)

	if importMap != nil {
		if resolvedModule, ok := importMap[prefix]; ok {
			var candidate string
			if hasSuffix {
				candidate = resolvedModule + "." + suffix
			} else {
				candidate = resolvedModule
			}
			if symID, ok := r.byModuleQualified[candidate]; ok {
				return symID, true
			}
			if hasSuffix {
				for moduleQualifiedKey, symID := range r.byModuleQualified {
					if strings.HasPrefix(moduleQualifiedKey, resolvedModule+".") && strings.HasSuffix(moduleQualifiedKey, "."+suffix) {
						return symID, true
					}
				}
			}
		}
	}

	sameModule := moduleQualified + "." + calleeName
	if symID, ok := r.byModuleQualified[sameModule]; ok {
		return symID, true
	}
	if hasSuffix {
		sameModuleSuffix := moduleQualified + "." + suffix
		if symID, ok := r.byModuleQualified[sameModuleSuffix]; ok {
			return symID, true
		}
	}

	lookupName := calleeName
	if hasSuffix {
		lookupName = suffix
	}
	candidates := r.byName[lookupName]
	if len(candidates) == 1 {
		return candidates[0], true
	}

	if hasSuffix {
		var matches []string
		for _, symID := range candidates {
			qualified := qualifiedOf(symID)
			if strings.HasSuffix(qualified, "."+calleeName) {
				return symID, true
			}
			if strings.HasSuffix(qualified, "."+suffix) {
				matches = append(matches, symID)
			}
		}
		if len(matches) == 1 {
			return matches[0], true
		}
		if len(matches) > 1 {
			return bestByImportDistance(matches, moduleQualified), true
		}
	}

	if len(candidates) > 1 {
		return bestByImportDistance(candidates, moduleQualified), true
	}

	return "", false
}

// FuzzyResolve is the last-resort fallback Resolve's caller reaches for
// when the normal ladder finds nothing: it strips any qualifying prefix
// off calleeName and matches purely by simple name, regardless of whether
// the prefix corresponds to anything known. Resulting edges are tagged
// with ResolutionMode "fuzzy" so callers can distinguish a confident match
// from a best-effort guess.
func (r *Registry) FuzzyResolve(calleeName, moduleQualified string) (string, bool) {
	_, suffix, hasSuffix := splitCallee(calleeName)
	name := calleeName
	if hasSuffix {
		name = suffix
	}
	candidates := r.byName[name]
	switch len(candidates) {
	case 0:
		return "", false
	case 1:
		return candidates[0], true
	default:
		return bestByImportDistance(candidates, moduleQualified), true
	}
}

func splitCallee(calleeName string) (prefix, suffix string, hasSuffix bool) {
	idx := strings.IndexByte(calleeName, '.')
	if idx < 0 {
		return calleeName, "", false
	}
	return calleeName[:idx], calleeName[idx+1:], true
}

func qualifiedOf(symbolID string) string {
	if idx := strings.IndexByte(symbolID, '#'); idx >= 0 {
		return symbolID[idx+1:]
	}
	return symbolID
}

// bestByImportDistance picks the candidate sharing the longest common
// dot-segment prefix with the caller's module path, approximating
// "closest in the project structure" when several candidates share a
// simple name.
func bestByImportDistance(candidates []string, callerModuleQualified string) string {
	best := candidates[0]
	bestLen := -1
	for _, c := range candidates {
		prefixLen := commonPrefixLen(qualifiedOf(c), callerModuleQualified)
		if prefixLen > bestLen {
			bestLen = prefixLen
			best = c
		}
	}
	return best
}

func commonPrefixLen(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")
	count := 0
	for i := 0; i < len(aParts) && i < len(bParts); i++ {
		if aParts[i] != bParts[i] {
			break
		}
		count++
	}
	return count
}
