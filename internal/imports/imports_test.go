package imports

import (
	"testing"

	"github.com/scopeforge/codegraph/internal/lang"
)

func knownSet(paths ...string) func(string) bool {
	set := map[string]bool{}
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func TestResolveJSRelative(t *testing.T) {
	known := knownSet("src.utils.helpers")
	got, ok := Resolve(lang.TypeScript, "src/app.ts", "./utils/helpers", known)
	if !ok || got != "src.utils.helpers" {
		t.Errorf("Resolve() = %q, %v, want src.utils.helpers, true", got, ok)
	}
}

func TestResolveJSBareSpecifierIsExternal(t *testing.T) {
	known := knownSet("src.utils.helpers")
	_, ok := Resolve(lang.JavaScript, "src/app.js", "react", known)
	if ok {
		t.Error("expected bare specifier to be treated as external, not resolved")
	}
}

func TestResolvePythonDotted(t *testing.T) {
	known := knownSet("pkg.widgets.button")
	got, ok := Resolve(lang.Python, "pkg/main.py", "pkg.widgets.button", known)
	if !ok || got != "pkg.widgets.button" {
		t.Errorf("Resolve() = %q, %v, want pkg.widgets.button, true", got, ok)
	}
}

func TestResolvePythonRelative(t *testing.T) {
	known := knownSet("pkg.widgets.button")
	got, ok := Resolve(lang.Python, "pkg/app/main.py", "..widgets.button", known)
	if !ok || got != "pkg.widgets.button" {
		t.Errorf("Resolve() = %q, %v, want pkg.widgets.button, true", got, ok)
	}
}

func TestResolveRustCrate(t *testing.T) {
	known := knownSet("widgets.button")
	got, ok := Resolve(lang.Rust, "src/main.rs", "crate::widgets::button", known)
	if !ok || got != "widgets.button" {
		t.Errorf("Resolve() = %q, %v, want widgets.button, true", got, ok)
	}
}

func TestResolveUnknownReturnsFalse(t *testing.T) {
	known := knownSet()
	_, ok := Resolve(lang.Python, "pkg/main.py", "pkg.missing", known)
	if ok {
		t.Error("expected unresolved import to report false, not an error")
	}
}
