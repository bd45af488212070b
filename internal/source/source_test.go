package source

import (
	"strings"
	"testing"

	"github.com/scopeforge/codegraph/internal/diag"
)

func TestAddOrUpdateParsesKnownLanguage(t *testing.T) {
	c := NewCache()
	f, err := c.AddOrUpdate("main.go", []byte("package main\n\nfunc main() {}\n"), nil)
	if err != nil {
		t.Fatalf("AddOrUpdate: %v", err)
	}
	if !f.Parsed {
		t.Fatal("expected file to be parsed")
	}
	if f.Tree == nil {
		t.Fatal("expected a tree")
	}
}

func TestAddOrUpdateUnknownExtensionCachesWithoutGraph(t *testing.T) {
	c := NewCache()
	coll := diag.NewCollector()
	f, err := c.AddOrUpdate("notes.cobol", []byte("hello"), coll)
	if err != nil {
		t.Fatalf("AddOrUpdate: %v", err)
	}
	if f.Parsed {
		t.Fatal("expected unparsed file for unknown extension")
	}
	all := coll.All()
	if len(all) != 0 {
		t.Fatalf("expected no diagnostic for an unknown extension, got %v", all)
	}
}

func TestAddOrUpdateFileTooLarge(t *testing.T) {
	c := NewCacheWithLimits(Limits{InitialBuffer: 16, MaxBuffer: 32})
	coll := diag.NewCollector()
	big := []byte(strings.Repeat("a", 100))
	f, err := c.AddOrUpdate("big.go", big, coll)
	if err != nil {
		t.Fatalf("AddOrUpdate: %v", err)
	}
	if f.Parsed {
		t.Fatal("expected file over the hard limit to be unparsed")
	}
	all := coll.All()
	if len(all) != 1 || all[0].Kind != diag.FileTooLarge {
		t.Fatalf("expected one FileTooLarge diagnostic, got %v", all)
	}
}

func TestAddOrUpdateIdempotentHash(t *testing.T) {
	c := NewCache()
	text := []byte("package main\n")
	f1, _ := c.AddOrUpdate("a.go", text, nil)
	f2, _ := c.AddOrUpdate("a.go", text, nil)
	if f1.Hash != f2.Hash {
		t.Errorf("re-adding identical text produced different hashes: %s vs %s", f1.Hash, f2.Hash)
	}
}

func TestRemoveClosesTree(t *testing.T) {
	c := NewCache()
	c.AddOrUpdate("a.go", []byte("package main\n"), nil)
	if _, ok := c.Get("a.go"); !ok {
		t.Fatal("expected a.go to be cached")
	}
	c.Remove("a.go")
	if _, ok := c.Get("a.go"); ok {
		t.Fatal("expected a.go to be gone after Remove")
	}
}

func TestPaths(t *testing.T) {
	c := NewCache()
	c.AddOrUpdate("a.go", []byte("package main\n"), nil)
	c.AddOrUpdate("b.py", []byte("x = 1\n"), nil)
	paths := c.Paths()
	if len(paths) != 2 {
		t.Fatalf("Paths() = %v, want 2 entries", paths)
	}
}
