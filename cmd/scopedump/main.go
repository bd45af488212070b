// Command scopedump is a small debug CLI over this engine's public
// surface, in the spirit of the teacher's cmd/ast_debug: instead of
// printing a raw CST for a few hardcoded snippets, it loads a real
// directory or file through internal/discover and internal/project and
// prints whichever view the caller asks for (the CST, the scope graph,
// or the project-wide call graph) for real source.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scopeforge/codegraph/internal/callgraph"
	"github.com/scopeforge/codegraph/internal/config"
	"github.com/scopeforge/codegraph/internal/diag"
	"github.com/scopeforge/codegraph/internal/discover"
	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/parser"
	"github.com/scopeforge/codegraph/internal/project"
	"github.com/scopeforge/codegraph/internal/scopegraph"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func main() {
	mode := flag.String("mode", "scope", "what to print: ast | scope | calls")
	configPath := flag.String("config", "", "path to a .scopegraph.yaml config file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: scopedump [-mode ast|scope|calls] [-config path] <file-or-dir>")
		os.Exit(2)
	}
	root := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("scopedump.config.load", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	info, err := os.Stat(root)
	if err != nil {
		slog.Error("scopedump.stat", "err", err)
		os.Exit(1)
	}

	if *mode == "ast" {
		if info.IsDir() {
			fmt.Fprintln(os.Stderr, "-mode ast requires a single file, not a directory")
			os.Exit(2)
		}
		dumpAST(root)
		return
	}

	p := project.New(diag.NewSlogSink(slog.Default()))
	if info.IsDir() {
		loadDir(p, root, cfg)
	} else {
		loadFile(p, root)
	}

	switch *mode {
	case "scope":
		dumpScopeGraphs(p)
	case "calls":
		dumpCallGraph(p, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown -mode %q\n", *mode)
		os.Exit(2)
	}
}

func loadDir(p *project.Project, root string, cfg config.Config) {
	files, err := discover.Discover(context.Background(), root, &discover.Options{IgnorePatterns: cfg.IgnorePatterns})
	if err != nil {
		slog.Error("scopedump.discover", "err", err)
		os.Exit(1)
	}
	for _, f := range files {
		loadFile(p, f.Path)
	}
}

func loadFile(p *project.Project, path string) {
	text, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("scopedump.read", "path", path, "err", err)
		return
	}
	if err := p.AddOrUpdateFile(path, text); err != nil {
		slog.Warn("scopedump.add", "path", path, "err", err)
	}
}

func dumpScopeGraphs(p *project.Project) {
	for _, path := range p.Paths() {
		g, ok := p.GetScopeGraph(path)
		if !ok {
			continue
		}
		fmt.Printf("=== %s ===\n", path)
		for _, d := range g.Definitions() {
			fmt.Printf("  def  %-10s %-30s %s\n", d.SymbolKind, d.Name, d.SymbolID)
		}
		for _, imp := range g.Nodes(scopegraph.ImportNode) {
			fmt.Printf("  import %-20s from %s\n", imp.Name, imp.SourceModule)
		}
	}
}

func dumpCallGraph(p *project.Project, cfg config.Config) {
	cg := p.GetCallGraph(callgraph.ProjectionOptions{
		MaxDepth:        cfg.CallGraph.MaxDepth,
		IncludeExternal: cfg.CallGraph.IncludeExternal,
	})
	for _, e := range cg.Edges {
		from := cg.Nodes[e.From]
		to := cg.Nodes[e.To]
		fmt.Printf("%s -> %s  [%s/%s]\n", from.Name, to.Name, e.Kind, e.ResolutionMode)
	}
	fmt.Printf("\n%d nodes, %d edges, %d top-level\n", len(cg.Nodes), len(cg.Edges), len(cg.TopLevelNodes))
}

func dumpAST(path string) {
	text, err := os.ReadFile(path)
	if err != nil {
		slog.Error("scopedump.read", "err", err)
		os.Exit(1)
	}
	l, ok := langForPath(path)
	if !ok {
		fmt.Fprintf(os.Stderr, "no registered language for %s\n", path)
		os.Exit(1)
	}
	tree, err := parser.Parse(l, text)
	if err != nil {
		slog.Error("scopedump.parse", "err", err)
		os.Exit(1)
	}
	defer tree.Close()
	printNode(tree.RootNode(), text, 0)
}

func langForPath(path string) (lang.Language, bool) {
	return lang.LanguageForExtension(filepath.Ext(path))
}

func printNode(node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}
	text := parser.NodeText(node, source)
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	fmt.Printf("%s%s %q\n", prefix, node.Kind(), text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printNode(node.Child(i), source, indent+1)
	}
}
