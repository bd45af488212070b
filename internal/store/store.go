package store

var (
	_ Backend = (*MemoryBackend)(nil)
	_ Backend = (*SQLiteBackend)(nil)

	_ Transaction = (*memoryTx)(nil)
	_ Transaction = (*sqliteTx)(nil)
)
