package diag

import "testing"

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Emit(Diagnostic{Kind: FileTooLarge, Path: "big.go", Message: "exceeds buffer limit"})
	c.Emit(Diagnostic{Kind: UnknownLanguage, Path: "weird.xyz"})

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d diagnostics, want 2", len(all))
	}
	if all[0].Kind != FileTooLarge {
		t.Errorf("first diagnostic kind = %s, want %s", all[0].Kind, FileTooLarge)
	}
	if all[1].Path != "weird.xyz" {
		t.Errorf("second diagnostic path = %s, want weird.xyz", all[1].Path)
	}
}

func TestCollectorAllReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.Emit(Diagnostic{Kind: StorageFailure})
	snapshot := c.All()
	c.Emit(Diagnostic{Kind: ParseIncomplete})
	if len(snapshot) != 1 {
		t.Errorf("earlier snapshot mutated: len = %d, want 1", len(snapshot))
	}
}
