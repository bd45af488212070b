// Package imports implements the import resolver (C5): mapping a parsed
// import node's module-path text to the module path of another file in
// the project, per language-specific resolution rules. Adapted from the
// teacher's parseGoImports/parsePythonImports/resolveRelativePythonImport
// family (internal/pipeline/imports.go), generalized from a flat
// localName->QN map into a function that resolves one scope-graph Import
// node at a time against a project's known module paths.
package imports

import (
	"path"
	"strings"

	"github.com/scopeforge/codegraph/internal/fqn"
	"github.com/scopeforge/codegraph/internal/lang"
)

// Resolve maps an import's written module-path text to the normalized
// module path of the file it refers to, relative to fromPath (the file
// containing the import). known reports whether a given normalized module
// path exists in the project, used to decide whether a relative/extension
// probe candidate is real. Returns ("", false) when no candidate matches
// any known file — an unresolved import is not an error (spec.md §7); the
// caller simply omits it from get_imports_with_definitions.
func Resolve(l lang.Language, fromPath, sourceModule string, known func(modulePath string) bool) (string, bool) {
	if sourceModule == "" {
		return "", false
	}
	switch l {
	case lang.JavaScript, lang.TypeScript, lang.TSX:
		return resolveJSLike(fromPath, sourceModule, known)
	case lang.Python:
		return resolvePython(fromPath, sourceModule, known)
	case lang.Rust:
		return resolveRust(fromPath, sourceModule, known)
	case lang.Go:
		return resolveGo(fromPath, sourceModule, known)
	default:
		return "", false
	}
}

// jsExtensionProbeOrder mirrors how a JS/TS bundler resolves an
// extensionless relative specifier: try the bare path, then each source
// extension, then an index file inside it as a directory.
var jsExtensionProbeOrder = []string{"", ".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.tsx", "/index.js", "/index.jsx"}

func resolveJSLike(fromPath, spec string, known func(string) bool) (string, bool) {
	if !strings.HasPrefix(spec, ".") {
		return "", false // bare specifier: external package, not project-internal
	}
	dir := path.Dir(fromPath)
	joined := path.Join(dir, spec)
	for _, suffix := range jsExtensionProbeOrder {
		candidate := fqn.NormalizeModulePath(joined + suffix)
		if known(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func resolvePython(fromPath, spec string, known func(string) bool) (string, bool) {
	if strings.HasPrefix(spec, ".") {
		return resolveRelativePython(fromPath, spec, known)
	}
	candidate := strings.ReplaceAll(spec, ".", "/")
	norm := fqn.NormalizeModulePath(candidate)
	if known(norm) {
		return norm, true
	}
	if known(norm + "/__init__") {
		return norm, true
	}
	return "", false
}

func resolveRelativePython(fromPath, spec string, known func(string) bool) (string, bool) {
	dots := 0
	for _, ch := range spec {
		if ch == '.' {
			dots++
		} else {
			break
		}
	}
	remainder := strings.TrimLeft(spec, ".")

	dir := path.Dir(fromPath)
	for i := 1; i < dots; i++ {
		dir = path.Dir(dir)
	}

	joined := dir
	if remainder != "" {
		joined = path.Join(dir, strings.ReplaceAll(remainder, ".", "/"))
	}
	norm := fqn.NormalizeModulePath(joined)
	if known(norm) {
		return norm, true
	}
	if known(norm + "/__init__") {
		return norm, true
	}
	return "", false
}

func resolveRust(fromPath, spec string, known func(string) bool) (string, bool) {
	// `use crate::foo::bar` / `use self::foo` / `use super::foo` resolve
	// against sibling module files; external crates (anything else) are
	// not project-internal.
	var relSegments []string
	switch {
	case strings.HasPrefix(spec, "crate::"):
		relSegments = strings.Split(strings.TrimPrefix(spec, "crate::"), "::")
	case strings.HasPrefix(spec, "self::"):
		relSegments = strings.Split(strings.TrimPrefix(spec, "self::"), "::")
	case strings.HasPrefix(spec, "super::"):
		dir := path.Dir(path.Dir(fromPath))
		relSegments = append([]string{dir}, strings.Split(strings.TrimPrefix(spec, "super::"), "::")...)
	default:
		return "", false
	}
	joined := strings.Join(relSegments, "/")
	norm := fqn.NormalizeModulePath(joined)
	if known(norm) {
		return norm, true
	}
	if known(norm + "/mod") {
		return norm, true
	}
	return "", false
}

func resolveGo(fromPath, importPath string, known func(string) bool) (string, bool) {
	norm := fqn.NormalizeModulePath(importPath)
	if known(norm) {
		return norm, true
	}
	return "", false
}
