package scopegraph

import (
	"reflect"
	"testing"

	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/parser"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := buildGo(t, goSample)

	snap := g.ToSnapshot()
	if snap.FilePath != g.FilePath {
		t.Fatalf("Snapshot.FilePath = %q, want %q", snap.FilePath, g.FilePath)
	}

	restored := FromSnapshot(snap)

	want := g.Definitions()
	got := restored.Definitions()
	if len(want) != len(got) {
		t.Fatalf("restored Definitions() = %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if want[i].Name != got[i].Name || want[i].SymbolID != got[i].SymbolID {
			t.Errorf("definition %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if restored.Root() != g.Root() {
		t.Errorf("restored Root() = %v, want %v", restored.Root(), g.Root())
	}
}

func TestSnapshotPreservesResolvedEdges(t *testing.T) {
	src := `package sample

func helper() int {
	return 1
}

func main() {
	helper()
}
`
	tree, err := parser.Parse(lang.Go, []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := lang.ForLanguage(lang.Go)
	g := Build(tree, cfg, "caller.go", []byte(src))

	restored := FromSnapshot(g.ToSnapshot())

	wantRefs := g.Nodes(ReferenceNode)
	gotRefs := restored.Nodes(ReferenceNode)
	if !reflect.DeepEqual(wantRefs, gotRefs) {
		t.Errorf("restored reference nodes = %+v, want %+v", gotRefs, wantRefs)
	}
}
