// Package store implements the pluggable storage backend spec.md §6
// describes as an optional external collaborator: initialize/get_state/
// set_state/begin_transaction, plus per-file cache/graph persistence.
// Nothing in internal/project requires a Backend — Project keeps its own
// in-memory source cache and scope graphs for the lifetime of the
// process — but a caller that wants results to survive a restart can
// mirror every mutation into one, and rehydrate a Project from it on
// startup instead of reparsing every file.
package store

import "github.com/scopeforge/codegraph/internal/scopegraph"

// FileRecord is one file's persisted state: its source text (for the
// source cache) and its scope-graph snapshot (for the scope-graph
// builder output), together with the language it was parsed as.
type FileRecord struct {
	Path     string
	Text     []byte
	Language string
	Graph    scopegraph.Snapshot
}

// Backend is the storage backend's operation set, per spec.md §6.
// Implementations must be safe for concurrent use by multiple callers;
// Project holds no Backend itself, and a Backend may be shared by other
// tooling (a CLI, a long-lived daemon) independently of any one Project
// instance.
type Backend interface {
	// Initialize prepares the backend for use (schema creation, opening a
	// connection). Called once before any other method.
	Initialize() error

	// GetState/SetState hold small opaque key-value metadata (e.g. the
	// indexed project's root path, a schema version marker) outside the
	// per-file record shape.
	GetState(key string) (string, bool, error)
	SetState(key, value string) error

	// BeginTransaction starts a serializable transaction: writes made
	// through the returned Transaction are invisible to GetFileCache/
	// GetFileGraph/GetState on the parent Backend (or any other
	// transaction) until Commit, and are discarded entirely by Rollback.
	BeginTransaction() (Transaction, error)

	GetFileCache(path string) ([]byte, bool, error)
	GetFileGraph(path string) (scopegraph.Snapshot, bool, error)
	UpdateFile(path string, cache []byte, graph scopegraph.Snapshot) error
	RemoveFile(path string) error
	GetFilePaths() ([]string, error)
	HasFile(path string) (bool, error)

	// Clear removes every stored file and state entry.
	Clear() error
	// Close releases any held resources (a file handle, a connection).
	Close() error
}

// Transaction is the write surface opened by Backend.BeginTransaction.
type Transaction interface {
	GetState(key string) (string, bool, error)
	SetState(key, value string) error
	UpdateFile(path string, cache []byte, graph scopegraph.Snapshot) error
	RemoveFile(path string) error
	Commit() error
	Rollback() error
}
