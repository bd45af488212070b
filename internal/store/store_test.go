package store

import (
	"testing"

	"github.com/scopeforge/codegraph/internal/scopegraph"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := sq.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	mem := NewMemoryBackend()
	if err := mem.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	return map[string]Backend{"memory": mem, "sqlite": sq}
}

func sampleSnapshot() scopegraph.Snapshot {
	return scopegraph.Snapshot{
		FilePath: "a.go",
		Nodes: []scopegraph.Node{
			{ID: 0, Kind: scopegraph.ScopeNode},
			{ID: 1, Kind: scopegraph.DefinitionNode, Name: "F", SymbolID: "a.go#a.F"},
		},
		Edges: []scopegraph.Edge{
			{Kind: scopegraph.DefToScope, From: 1, To: 0},
		},
		Root: 0,
	}
}

func TestBackendUpdateAndGetFile(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			snap := sampleSnapshot()
			if err := b.UpdateFile("a.go", []byte("package a\n"), snap); err != nil {
				t.Fatalf("UpdateFile: %v", err)
			}

			text, ok, err := b.GetFileCache("a.go")
			if err != nil || !ok {
				t.Fatalf("GetFileCache: %v, %v", ok, err)
			}
			if string(text) != "package a\n" {
				t.Errorf("GetFileCache = %q", text)
			}

			got, ok, err := b.GetFileGraph("a.go")
			if err != nil || !ok {
				t.Fatalf("GetFileGraph: %v, %v", ok, err)
			}
			if len(got.Nodes) != 2 || len(got.Edges) != 1 {
				t.Errorf("GetFileGraph = %+v", got)
			}

			has, err := b.HasFile("a.go")
			if err != nil || !has {
				t.Errorf("HasFile = %v, %v, want true, nil", has, err)
			}
		})
	}
}

func TestBackendRemoveFile(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.UpdateFile("a.go", []byte("x"), sampleSnapshot())
			if err := b.RemoveFile("a.go"); err != nil {
				t.Fatalf("RemoveFile: %v", err)
			}
			if has, _ := b.HasFile("a.go"); has {
				t.Error("expected file gone after RemoveFile")
			}
		})
	}
}

func TestBackendGetFilePaths(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.UpdateFile("a.go", []byte("x"), scopegraph.Snapshot{FilePath: "a.go"})
			b.UpdateFile("b.go", []byte("y"), scopegraph.Snapshot{FilePath: "b.go"})
			paths, err := b.GetFilePaths()
			if err != nil {
				t.Fatalf("GetFilePaths: %v", err)
			}
			if len(paths) != 2 {
				t.Errorf("GetFilePaths = %v, want 2 entries", paths)
			}
		})
	}
}

func TestBackendState(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := b.SetState("root", "/proj"); err != nil {
				t.Fatalf("SetState: %v", err)
			}
			v, ok, err := b.GetState("root")
			if err != nil || !ok || v != "/proj" {
				t.Errorf("GetState = %q, %v, %v", v, ok, err)
			}
			if err := b.SetState("root", "/other"); err != nil {
				t.Fatalf("SetState overwrite: %v", err)
			}
			v, _, _ = b.GetState("root")
			if v != "/other" {
				t.Errorf("GetState after overwrite = %q, want /other", v)
			}
		})
	}
}

func TestBackendTransactionCommit(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			tx, err := b.BeginTransaction()
			if err != nil {
				t.Fatalf("BeginTransaction: %v", err)
			}
			if err := tx.UpdateFile("a.go", []byte("x"), sampleSnapshot()); err != nil {
				t.Fatalf("tx.UpdateFile: %v", err)
			}
			if has, _ := b.HasFile("a.go"); has {
				t.Error("uncommitted write must not be visible on the parent backend")
			}
			if err := tx.Commit(); err != nil {
				t.Fatalf("Commit: %v", err)
			}
			if has, _ := b.HasFile("a.go"); !has {
				t.Error("expected file visible after commit")
			}
		})
	}
}

func TestBackendTransactionRollback(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			tx, err := b.BeginTransaction()
			if err != nil {
				t.Fatalf("BeginTransaction: %v", err)
			}
			tx.UpdateFile("a.go", []byte("x"), sampleSnapshot())
			if err := tx.Rollback(); err != nil {
				t.Fatalf("Rollback: %v", err)
			}
			if has, _ := b.HasFile("a.go"); has {
				t.Error("expected no file visible after rollback")
			}
		})
	}
}

func TestBackendClear(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.UpdateFile("a.go", []byte("x"), sampleSnapshot())
			b.SetState("k", "v")
			if err := b.Clear(); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if has, _ := b.HasFile("a.go"); has {
				t.Error("expected no files after Clear")
			}
			if _, ok, _ := b.GetState("k"); ok {
				t.Error("expected no state after Clear")
			}
		})
	}
}
