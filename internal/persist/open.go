package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFileName is the database file of the sqlite backend inside the data directory.
const SQLiteFileName = "opstrack.db"

// Open returns the KV backend named by backend rooted at dataDir.
func Open(backend, dataDir string, log *zap.Logger) (KV, error) {
	switch backend {
	case BackendFile, "":
		return NewFileKV(filepath.Join(dataDir, "slots"))
	case BackendSQLite:
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, SQLiteFileName), log)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", backend)
	}
}
