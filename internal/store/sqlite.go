package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/scopeforge/codegraph/internal/scopegraph"
)

// sqlQuerier abstracts *sql.DB and *sql.Tx, the same split the teacher's
// store.Querier draws, so the query methods below work unchanged whether
// they run against the live connection or inside a transaction.
type sqlQuerier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// SQLiteBackend is the disk-backed Backend variant, adapted from the
// teacher's store.Store connection/transaction handling (Open/OpenPath/
// WithTransaction) but reshaped around the spec's file-cache/file-graph
// record instead of the teacher's node/edge property-graph tables.
type SQLiteBackend struct {
	db *sql.DB
	q  sqlQuerier
}

// OpenSQLite opens or creates a SQLite database at dbPath. Pass ":memory:"
// for a transient, in-process database that still exercises the real
// modernc.org/sqlite driver (useful in tests alongside MemoryBackend,
// which covers the pure-Go path).
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	if dbPath == ":memory:" {
		dsn = dbPath + "?_pragma=foreign_keys(ON)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	b := &SQLiteBackend{db: db}
	b.q = db
	return b, nil
}

func (b *SQLiteBackend) Initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS file_cache (
		path     TEXT PRIMARY KEY,
		text     BLOB NOT NULL,
		language TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS file_graph (
		path     TEXT PRIMARY KEY REFERENCES file_cache(path) ON DELETE CASCADE,
		snapshot TEXT NOT NULL
	);
	`
	_, err := b.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) Clear() error {
	// Deleting file_cache rows also removes their file_graph rows
	// (ON DELETE CASCADE).
	if _, err := b.db.Exec(`DELETE FROM file_cache`); err != nil {
		return err
	}
	if _, err := b.db.Exec(`DELETE FROM kv_state`); err != nil {
		return err
	}
	return nil
}

func getState(q sqlQuerier, key string) (string, bool, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM kv_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func setState(q sqlQuerier, key, value string) error {
	_, err := q.Exec(`INSERT INTO kv_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (b *SQLiteBackend) GetState(key string) (string, bool, error) { return getState(b.q, key) }
func (b *SQLiteBackend) SetState(key, value string) error          { return setState(b.q, key, value) }

func getFileCache(q sqlQuerier, path string) ([]byte, bool, error) {
	var text []byte
	err := q.QueryRow(`SELECT text FROM file_cache WHERE path = ?`, path).Scan(&text)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return text, true, nil
}

func getFileGraph(q sqlQuerier, path string) (scopegraph.Snapshot, bool, error) {
	var raw string
	err := q.QueryRow(`SELECT snapshot FROM file_graph WHERE path = ?`, path).Scan(&raw)
	if err == sql.ErrNoRows {
		return scopegraph.Snapshot{}, false, nil
	}
	if err != nil {
		return scopegraph.Snapshot{}, false, err
	}
	var snap scopegraph.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return scopegraph.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

func updateFile(q sqlQuerier, path string, cache []byte, graph scopegraph.Snapshot) error {
	raw, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := q.Exec(`INSERT INTO file_cache (path, text, language) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET text = excluded.text`, path, cache, ""); err != nil {
		return err
	}
	_, err = q.Exec(`INSERT INTO file_graph (path, snapshot) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET snapshot = excluded.snapshot`, path, string(raw))
	return err
}

func removeFile(q sqlQuerier, path string) error {
	_, err := q.Exec(`DELETE FROM file_cache WHERE path = ?`, path)
	return err
}

func (b *SQLiteBackend) GetFileCache(path string) ([]byte, bool, error) { return getFileCache(b.q, path) }
func (b *SQLiteBackend) GetFileGraph(path string) (scopegraph.Snapshot, bool, error) {
	return getFileGraph(b.q, path)
}
func (b *SQLiteBackend) UpdateFile(path string, cache []byte, graph scopegraph.Snapshot) error {
	return updateFile(b.q, path, cache, graph)
}
func (b *SQLiteBackend) RemoveFile(path string) error { return removeFile(b.q, path) }

func (b *SQLiteBackend) GetFilePaths() ([]string, error) {
	rows, err := b.q.Query(`SELECT path FROM file_cache`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (b *SQLiteBackend) HasFile(path string) (bool, error) {
	var exists int
	err := b.q.QueryRow(`SELECT 1 FROM file_cache WHERE path = ?`, path).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BeginTransaction opens a real SQLite transaction (spec.md §6:
// "serializable: changes become visible only on commit; rollback
// discards them"), mirroring the teacher's Store.WithTransaction except
// returning the transaction handle directly instead of taking a callback.
func (b *SQLiteBackend) BeginTransaction() (Transaction, error) {
	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &sqliteTx{tx: tx}, nil
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) GetState(key string) (string, bool, error) { return getState(t.tx, key) }
func (t *sqliteTx) SetState(key, value string) error          { return setState(t.tx, key, value) }
func (t *sqliteTx) UpdateFile(path string, cache []byte, graph scopegraph.Snapshot) error {
	return updateFile(t.tx, path, cache, graph)
}
func (t *sqliteTx) RemoveFile(path string) error { return removeFile(t.tx, path) }
func (t *sqliteTx) Commit() error                { return t.tx.Commit() }
func (t *sqliteTx) Rollback() error              { return t.tx.Rollback() }
