// Package storage persists the food log as opaque values under string keys.
package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("key not found")

// Backend names accepted by Open and the storage_backend config key.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// KV is a minimal key-value persistence surface.
type KV interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}

// Backupper is implemented by backends that keep rotating backups of a key.
type Backupper interface {
	CreateBackup(key string) error
	ListBackups(key string) ([]BackupInfo, error)
	RestoreBackup(key string, n int) error
}

// Open returns the backend named by backend rooted in dir.
// logOut receives warnings of the sqlite driver; nil discards them.
func Open(backend, dir string, logOut io.Writer) (KV, error) {
	switch strings.ToLower(backend) {
	case "", BackendFile:
		return NewFileKV(dir)
	case BackendSQLite:
		return OpenSQLite(dir, logOut)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %s)", backend, strings.Join(Backends(), ", "))
	}
}
