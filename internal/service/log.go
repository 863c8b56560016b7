package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xolan/nutritrack/internal/filter"
	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/form"
	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/storage"
	"github.com/xolan/nutritrack/internal/store"
)

const storeKey = store.Key

// ErrBackupsUnsupported is returned by backup operations on backends
// without backups.
var ErrBackupsUnsupported = errors.New("backups are only kept by the file backend")

// LogService provides operations on the food log
type LogService struct {
	kv  storage.KV
	loc *time.Location

	// Now and NewID feed new entries. Tests replace them.
	Now   func() time.Time
	NewID func() string

	mu sync.Mutex
	st *store.Store
}

// NewLogService creates a new LogService. The store is opened on first use
// so that validate and restore still work on a corrupt log.
func NewLogService(kv storage.KV, loc *time.Location) *LogService {
	if loc == nil {
		loc = time.Local
	}
	return &LogService{
		kv:    kv,
		loc:   loc,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Location returns the timezone used for display and day grouping.
func (s *LogService) Location() *time.Location {
	return s.loc
}

// Store returns the open store, loading it on the first call.
// A corrupt log returns an error wrapping store.ErrCorrupt.
func (s *LogService) Store() (*store.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st != nil {
		return s.st, nil
	}
	st, err := store.Open(s.kv)
	if err != nil {
		return nil, err
	}
	s.st = st
	return st, nil
}

// invalidate drops the cached store after the backend changed underneath it.
func (s *LogService) invalidate() {
	s.mu.Lock()
	s.st = nil
	s.mu.Unlock()
}

// NewForm returns a form controller using the service clock and ids.
func (s *LogService) NewForm() *form.Controller {
	c := form.NewController()
	c.Now = s.Now
	c.NewID = s.NewID
	return c
}

// Submit validates the form, adds the entry and resets the form.
func (s *LogService) Submit(c *form.Controller) (*food.Entry, error) {
	st, err := s.Store()
	if err != nil {
		return nil, err
	}
	return c.Submit(st)
}

// Add validates fields and adds the resulting entry.
func (s *LogService) Add(fields form.Fields) (*food.Entry, error) {
	c := s.NewForm()
	c.Fields = fields
	return s.Submit(c)
}

// Get resolves an id or unique id prefix.
func (s *LogService) Get(idPrefix string) (food.Entry, error) {
	st, err := s.Store()
	if err != nil {
		return food.Entry{}, err
	}
	return st.Find(idPrefix)
}

// Delete removes the entry with the given id or unique id prefix.
// The file backend snapshots the log first so the delete can be restored.
func (s *LogService) Delete(idPrefix string) (food.Entry, error) {
	st, err := s.Store()
	if err != nil {
		return food.Entry{}, err
	}

	e, err := st.Find(idPrefix)
	if err != nil {
		return food.Entry{}, err
	}

	if b, ok := s.kv.(storage.Backupper); ok {
		if err := b.CreateBackup(storeKey); err != nil {
			return food.Entry{}, fmt.Errorf("failed to create backup: %w", err)
		}
	}

	removed, ok, err := st.Remove(e.ID)
	if err != nil {
		return food.Entry{}, err
	}
	if !ok {
		return food.Entry{}, fmt.Errorf("%w %q", store.ErrNoMatch, idPrefix)
	}
	return removed, nil
}

// DeleteByID removes the entry with exactly this id.
// Unknown ids are a no-op reported as ok == false.
func (s *LogService) DeleteByID(id string) (food.Entry, bool, error) {
	st, err := s.Store()
	if err != nil {
		return food.Entry{}, false, err
	}

	if b, ok := s.kv.(storage.Backupper); ok {
		if _, err := st.Find(id); err == nil {
			if err := b.CreateBackup(storeKey); err != nil {
				return food.Entry{}, false, fmt.Errorf("failed to create backup: %w", err)
			}
		}
	}
	return st.Remove(id)
}

// List returns the entries matching q together with the totals of the
// whole log.
func (s *LogService) List(q filter.Query) (*ListResult, error) {
	st, err := s.Store()
	if err != nil {
		return nil, err
	}

	all := st.Entries()
	return &ListResult{
		Entries: filter.Apply(all, q),
		Query:   q,
		Total:   len(all),
		Totals:  stats.Aggregate(all),
	}, nil
}

// Entries returns the whole log, newest first.
func (s *LogService) Entries() ([]food.Entry, error) {
	st, err := s.Store()
	if err != nil {
		return nil, err
	}
	return st.Entries(), nil
}

// Totals returns the totals of the whole log.
func (s *LogService) Totals() (food.Macros, error) {
	entries, err := s.Entries()
	if err != nil {
		return food.Macros{}, err
	}
	return stats.Aggregate(entries), nil
}

// Validate reports the health of the persisted log without loading it
// into the store.
func (s *LogService) Validate() (storage.Health, error) {
	data, err := s.kv.Load(storeKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Validate(nil), nil
		}
		return storage.Health{}, err
	}
	return storage.Validate(data), nil
}

// Backups lists the snapshots kept by the file backend.
func (s *LogService) Backups() ([]storage.BackupInfo, error) {
	b, ok := s.kv.(storage.Backupper)
	if !ok {
		return nil, ErrBackupsUnsupported
	}
	return b.ListBackups(storeKey)
}

// Restore replaces the log with backup n and reloads the store.
func (s *LogService) Restore(n int) error {
	b, ok := s.kv.(storage.Backupper)
	if !ok {
		return ErrBackupsUnsupported
	}
	if err := b.RestoreBackup(storeKey, n); err != nil {
		return err
	}
	s.invalidate()
	return nil
}
