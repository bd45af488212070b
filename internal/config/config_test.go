package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.IgnorePatterns) != 0 || cfg.MaxFileBytes != 0 {
		t.Errorf("Load(missing) = %+v, want zero value", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".scopegraph.yaml")
	text := `
ignore_patterns:
  - "*.generated.go"
  - vendor
max_file_bytes: 1048576
call_graph:
  max_depth: 3
  include_external: true
`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.IgnorePatterns) != 2 || cfg.IgnorePatterns[1] != "vendor" {
		t.Errorf("IgnorePatterns = %v", cfg.IgnorePatterns)
	}
	if cfg.MaxFileBytes != 1048576 {
		t.Errorf("MaxFileBytes = %d, want 1048576", cfg.MaxFileBytes)
	}
	if cfg.CallGraph.MaxDepth != 3 || !cfg.CallGraph.IncludeExternal {
		t.Errorf("CallGraph = %+v", cfg.CallGraph)
	}
}

func TestDefaultIsZeroValue(t *testing.T) {
	cfg := Default()
	if len(cfg.IgnorePatterns) != 0 || cfg.MaxFileBytes != 0 || cfg.CallGraph.MaxDepth != 0 {
		t.Errorf("Default() = %+v, want zero value", cfg)
	}
}
