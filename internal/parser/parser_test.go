package parser

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/scopeforge/codegraph/internal/lang"
)

func TestParseGo(t *testing.T) {
	source := []byte(`package main

func Hello() string {
	return "hello"
}

func Add(a, b int) int {
	return a + b
}
`)
	tree, err := Parse(lang.Go, source)
	if err != nil {
		t.Fatalf("Parse Go: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		t.Fatal("root node is nil")
	}

	var funcCount int
	Walk(root, func(n *tree_sitter.Node) bool {
		if n.Kind() == "function_declaration" {
			funcCount++
		}
		return true
	})
	if funcCount != 2 {
		t.Errorf("funcCount = %d, want 2", funcCount)
	}
}

func TestParsePython(t *testing.T) {
	source := []byte("def helper():\n    return 42\n\ndef main():\n    return helper()\n")
	tree, err := Parse(lang.Python, source)
	if err != nil {
		t.Fatalf("Parse Python: %v", err)
	}
	defer tree.Close()

	var defCount int
	Walk(tree.RootNode(), func(n *tree_sitter.Node) bool {
		if n.Kind() == "function_definition" {
			defCount++
		}
		return true
	})
	if defCount != 2 {
		t.Errorf("defCount = %d, want 2", defCount)
	}
}

func TestParseUnsupportedLanguage(t *testing.T) {
	if _, err := Parse(lang.Language("cobol"), []byte("IDENTIFICATION DIVISION.")); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestNodeTextEmptyOnNil(t *testing.T) {
	if got := NodeText(nil, []byte("x")); got != "" {
		t.Errorf("NodeText(nil) = %q, want empty", got)
	}
}

func TestReparseAfterEdit(t *testing.T) {
	source := []byte("def a():\n    pass\n")
	tree, err := Parse(lang.Python, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	newSource := []byte("def ab():\n    pass\n")
	tree.Edit(&tree_sitter.InputEdit{
		StartByte:   7,
		OldEndByte:  7,
		NewEndByte:  8,
		StartPoint:  tree_sitter.Point{Row: 0, Column: 7},
		OldEndPoint: tree_sitter.Point{Row: 0, Column: 7},
		NewEndPoint: tree_sitter.Point{Row: 0, Column: 8},
	})

	newTree, err := Reparse(lang.Python, newSource, tree)
	if err != nil {
		t.Fatalf("Reparse: %v", err)
	}
	defer newTree.Close()

	if got := NodeText(newTree.RootNode(), newSource); got != string(newSource) {
		t.Errorf("reparsed root text = %q, want %q", got, newSource)
	}
}
