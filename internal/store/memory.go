package store

import (
	"sync"

	"github.com/scopeforge/codegraph/internal/scopegraph"
)

// MemoryBackend is the in-memory default Backend: a mutex-guarded map,
// no persistence across process restarts. Grounded on the teacher's
// store.Store.WithTransaction shape (a transaction-scoped handle sharing
// the parent's lock/state rather than a separate connection), simplified
// here since there is no underlying database to serialize against.
type MemoryBackend struct {
	mu    sync.Mutex
	state map[string]string
	files map[string]FileRecord
}

// NewMemoryBackend returns a ready-to-use in-memory backend; Initialize
// is a no-op for it but is still safe to call.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		state: map[string]string{},
		files: map[string]FileRecord{},
	}
}

func (b *MemoryBackend) Initialize() error { return nil }

func (b *MemoryBackend) GetState(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.state[key]
	return v, ok, nil
}

func (b *MemoryBackend) SetState(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state[key] = value
	return nil
}

func (b *MemoryBackend) GetFileCache(path string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.files[path]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, f.Text...), true, nil
}

func (b *MemoryBackend) GetFileGraph(path string) (scopegraph.Snapshot, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.files[path]
	if !ok {
		return scopegraph.Snapshot{}, false, nil
	}
	return f.Graph, true, nil
}

func (b *MemoryBackend) UpdateFile(path string, cache []byte, graph scopegraph.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[path] = FileRecord{Path: path, Text: append([]byte{}, cache...), Graph: graph}
	return nil
}

func (b *MemoryBackend) RemoveFile(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.files, path)
	return nil
}

func (b *MemoryBackend) GetFilePaths() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	return paths, nil
}

func (b *MemoryBackend) HasFile(path string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.files[path]
	return ok, nil
}

func (b *MemoryBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = map[string]string{}
	b.files = map[string]FileRecord{}
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

// BeginTransaction returns a Transaction that buffers writes in its own
// overlay and applies them to the parent backend atomically on Commit,
// holding the parent's lock for the duration of the apply so no other
// reader observes a partial write set.
func (b *MemoryBackend) BeginTransaction() (Transaction, error) {
	return &memoryTx{
		parent:     b,
		stateOps:   map[string]string{},
		fileWrites: map[string]*FileRecord{}, // nil value = pending removal
	}
}

type memoryTx struct {
	parent     *MemoryBackend
	stateOps   map[string]string
	fileWrites map[string]*FileRecord
	done       bool
}

func (t *memoryTx) GetState(key string) (string, bool, error) {
	if v, ok := t.stateOps[key]; ok {
		return v, true, nil
	}
	return t.parent.GetState(key)
}

func (t *memoryTx) SetState(key, value string) error {
	t.stateOps[key] = value
	return nil
}

func (t *memoryTx) UpdateFile(path string, cache []byte, graph scopegraph.Snapshot) error {
	rec := FileRecord{Path: path, Text: append([]byte{}, cache...), Graph: graph}
	t.fileWrites[path] = &rec
	return nil
}

func (t *memoryTx) RemoveFile(path string) error {
	t.fileWrites[path] = nil
	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	for k, v := range t.stateOps {
		t.parent.state[k] = v
	}
	for path, rec := range t.fileWrites {
		if rec == nil {
			delete(t.parent.files, path)
		} else {
			t.parent.files[path] = *rec
		}
	}
	return nil
}

func (t *memoryTx) Rollback() error {
	t.done = true
	t.stateOps = nil
	t.fileWrites = nil
	return nil
}
