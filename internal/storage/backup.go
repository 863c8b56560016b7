package storage

import (
	"errors"
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// ErrNoBackup is returned when restoring a backup that does not exist.
var ErrNoBackup = errors.New("backup does not exist")

// BackupInfo describes one backup file.
type BackupInfo struct {
	Number  int   // 1 is the most recent
	Path    string
	Size    int64
	ModTime int64 // unix seconds
}

// BackupPath returns the path of backup n of key, e.g. food-entries.json.bak.2.
func (f *FileKV) BackupPath(key string, n int) string {
	return fmt.Sprintf("%s%s.%d", f.Path(key), BackupSuffix, n)
}

// rotateBackups shifts .bak.1 -> .bak.2 -> .bak.3 and drops the oldest.
// Missing files are skipped.
func (f *FileKV) rotateBackups(key string) error {
	if err := os.Remove(f.BackupPath(key, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(f.BackupPath(key, i), f.BackupPath(key, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup copies the current value of key to .bak.1 after rotating
// the older backups. Nothing happens when key has never been saved.
func (f *FileKV) CreateBackup(key string) error {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := f.rotateBackups(key); err != nil {
		return fmt.Errorf("rotate backups: %w", err)
	}

	return os.WriteFile(f.BackupPath(key, 1), data, 0o644)
}

// ListBackups returns the existing backups of key, most recent first.
func (f *FileKV) ListBackups(key string) ([]BackupInfo, error) {
	backups := []BackupInfo{}

	for i := 1; i <= MaxBackupCount; i++ {
		path := f.BackupPath(key, i)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{
			Number:  i,
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		})
	}

	return backups, nil
}

// RestoreBackup replaces the value of key with backup n.
// The current value is backed up first, so a restore can itself be undone.
func (f *FileKV) RestoreBackup(key string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	data, err := os.ReadFile(f.BackupPath(key, n))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d: %w", n, ErrNoBackup)
		}
		return err
	}

	if err := f.CreateBackup(key); err != nil {
		return err
	}

	return f.Save(key, data)
}
