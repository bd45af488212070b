// Package source implements the per-file source cache (C1): raw text, the
// parsed CST, and the resolved language, plus the incremental-edit entry
// point scope-graph rebuilding hangs off of.
package source

import (
	"encoding/hex"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"github.com/zeebo/xxh3"

	"github.com/scopeforge/codegraph/internal/diag"
	"github.com/scopeforge/codegraph/internal/lang"
	"github.com/scopeforge/codegraph/internal/parser"
)

// Limits bounds how large a file's source buffer is allowed to grow before
// AddOrUpdate gives up and falls back to caching the file unparsed.
// InitialBuffer is doubled on each retry up to MaxBuffer.
type Limits struct {
	InitialBuffer int
	MaxBuffer     int
}

// DefaultLimits matches spec.md §4.1's "default ≥ 512 KiB" starting point,
// doubling up to 8x that before falling back.
func DefaultLimits() Limits {
	const initial = 512 * 1024
	return Limits{InitialBuffer: initial, MaxBuffer: initial * 8}
}

// File is one cached source file: text, CST, language, and a content hash
// used for idempotent re-adds (Scenario H / testable property 8).
type File struct {
	Path     string
	Text     []byte
	Tree     *tree_sitter.Tree
	Language lang.Language
	Hash     string
	// Parsed is false when the file is cached present-but-unparsed: either
	// the extension has no registered language, or it exceeded the buffer
	// limit.
	Parsed bool
}

// Cache holds every file currently known to a project, keyed by path.
type Cache struct {
	mu     sync.RWMutex
	files  map[string]*File
	limits Limits
}

func NewCache() *Cache {
	return &Cache{
		files:  make(map[string]*File),
		limits: DefaultLimits(),
	}
}

func NewCacheWithLimits(limits Limits) *Cache {
	return &Cache{
		files:  make(map[string]*File),
		limits: limits,
	}
}

// Get returns the cached file for path, if any.
func (c *Cache) Get(path string) (*File, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.files[path]
	return f, ok
}

// Paths returns every cached file path.
func (c *Cache) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.files))
	for p := range c.files {
		out = append(out, p)
	}
	return out
}

// Remove drops a file from the cache, releasing its CST.
func (c *Cache) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.files[path]; ok && f.Tree != nil {
		f.Tree.Close()
	}
	delete(c.files, path)
}

// AddOrUpdate parses text under the language bound to path's extension and
// stores the result. An unregistered extension caches the file without a
// graph, silently, per spec.md §4.2 ("extension ↔ language binding is
// total"). A file whose buffer requirement exceeds the configured hard
// limit is cached present-but-unparsed and a FileTooLarge diagnostic is
// emitted; it is not an error return.
func (c *Cache) AddOrUpdate(path string, text []byte, sink diag.Sink) (*File, error) {
	ext := extOf(path)
	l, ok := lang.LanguageForExtension(ext)
	hash := hashOf(text)

	if !ok {
		f := &File{Path: path, Text: text, Hash: hash, Parsed: false}
		c.store(path, f)
		return f, nil
	}

	if !c.withinLimit(len(text)) {
		f := &File{Path: path, Text: text, Language: l, Hash: hash, Parsed: false}
		c.store(path, f)
		if sink != nil {
			sink.Emit(diag.Diagnostic{
				Kind:    diag.FileTooLarge,
				Path:    path,
				Message: fmt.Sprintf("source exceeds buffer limit of %d bytes", c.limits.MaxBuffer),
			})
		}
		return f, nil
	}

	tree, err := parser.Parse(l, text)
	if err != nil {
		f := &File{Path: path, Text: text, Language: l, Hash: hash, Parsed: false}
		c.store(path, f)
		if sink != nil {
			sink.Emit(diag.Diagnostic{Kind: diag.ParseIncomplete, Path: path, Message: err.Error()})
		}
		return f, nil
	}

	if tree.RootNode().HasError() && sink != nil {
		sink.Emit(diag.Diagnostic{Kind: diag.ParseIncomplete, Path: path})
	}

	f := &File{Path: path, Text: text, Tree: tree, Language: l, Hash: hash, Parsed: true}
	c.store(path, f)
	return f, nil
}

// UpdateRange applies an incremental edit: the caller supplies the new full
// text along with the tree-sitter edit description (byte offsets and
// row/column positions for the edited range), and the prior tree is
// incrementally reparsed rather than parsed from scratch. The scope graph
// built from the result is always rebuilt, never patched (§4.1 rationale:
// bounding rebuild cost by file size is simpler than patch correctness).
func (c *Cache) UpdateRange(path string, edit tree_sitter.InputEdit, newText []byte, sink diag.Sink) (*File, error) {
	prev, ok := c.Get(path)
	if !ok || !prev.Parsed || prev.Tree == nil {
		return c.AddOrUpdate(path, newText, sink)
	}

	if !c.withinLimit(len(newText)) {
		prev.Tree.Close()
		f := &File{Path: path, Text: newText, Language: prev.Language, Hash: hashOf(newText), Parsed: false}
		c.store(path, f)
		if sink != nil {
			sink.Emit(diag.Diagnostic{Kind: diag.FileTooLarge, Path: path})
		}
		return f, nil
	}

	prev.Tree.Edit(&edit)
	tree, err := parser.Reparse(prev.Language, newText, prev.Tree)
	prev.Tree.Close()
	if err != nil {
		f := &File{Path: path, Text: newText, Language: prev.Language, Hash: hashOf(newText), Parsed: false}
		c.store(path, f)
		return f, nil
	}

	f := &File{Path: path, Text: newText, Tree: tree, Language: prev.Language, Hash: hashOf(newText), Parsed: true}
	c.store(path, f)
	return f, nil
}

func (c *Cache) store(path string, f *File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.files[path]; ok && old.Tree != nil && old.Tree != f.Tree {
		old.Tree.Close()
	}
	c.files[path] = f
}

// withinLimit simulates the "grow the buffer and retry" doubling sequence;
// tree-sitter itself parses whatever bytes it is given, so growth here
// decides only whether the hard cap admits the file, not how parsing
// proceeds.
func (c *Cache) withinLimit(size int) bool {
	limit := c.limits.InitialBuffer
	if limit <= 0 {
		limit = DefaultLimits().InitialBuffer
	}
	max := c.limits.MaxBuffer
	if max <= 0 {
		max = limit * 8
	}
	for limit < size && limit < max {
		limit *= 2
	}
	return size <= limit
}

func hashOf(text []byte) string {
	h := xxh3.Hash(text)
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(buf[:])
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}
