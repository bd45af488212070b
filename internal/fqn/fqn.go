// Package fqn computes the canonical identifiers the rest of the engine
// uses to name a file's module path and a definition's fully qualified
// name within it, following spec.md §6's "<module>#<qualified.name>"
// SymbolId format.
package fqn

import (
	"path/filepath"
	"strings"

	"github.com/scopeforge/codegraph/internal/lang"
)

// NormalizeModulePath turns a file path (relative or absolute, with
// either separator style) into the dotted module path used as the left
// half of a SymbolId. Normalization is idempotent: normalizing an
// already-normalized path returns it unchanged.
func NormalizeModulePath(relPath string) string {
	relPath = strings.ReplaceAll(relPath, `\`, "/")
	relPath = strings.TrimPrefix(relPath, "./")
	relPath = strings.TrimSuffix(relPath, "/")

	// Only a registered source extension is stripped, so the last segment
	// of an already-dotted module path is left alone.
	ext := filepath.Ext(relPath)
	if ext != "" && lang.ForExtension(ext) != nil {
		relPath = strings.TrimSuffix(relPath, ext)
	}

	parts := strings.Split(relPath, "/")
	parts = dropIndexSegment(parts)

	return strings.Join(parts, ".")
}

// dropIndexSegment strips a trailing __init__ or index segment, since
// both name the enclosing package/directory rather than a distinct
// module.
func dropIndexSegment(parts []string) []string {
	if len(parts) == 0 {
		return parts
	}
	last := parts[len(parts)-1]
	if last == "__init__" || last == "index" {
		return parts[:len(parts)-1]
	}
	return parts
}

// QualifiedName joins a dotted symbol path (e.g. a class name and its
// method, "Handler", "Serve") into the qualified-name half of a
// SymbolId. It never includes the module path: per spec.md §6 that half
// names only the symbol's position within its file. With no nameParts it
// names the module-level synthetic definition itself, per §6's "module-
// level synthetic definitions use qualified name <module>".
func QualifiedName(nameParts ...string) string {
	parts := nonEmpty(nameParts)
	if len(parts) == 0 {
		return "<module>"
	}
	return strings.Join(parts, ".")
}

// SymbolID builds the full "<module>#<qualified.name>" identifier.
func SymbolID(relPath string, nameParts ...string) string {
	module := NormalizeModulePath(relPath)
	qualified := QualifiedName(nameParts...)
	return module + "#" + qualified
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
