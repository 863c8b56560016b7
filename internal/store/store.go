// Package store holds the food log in memory and mirrors it to a
// persistence backend after every change.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/storage"
)

// Key is the persistence key the whole log is saved under.
const Key = "food-entries"

var (
	// ErrCorrupt means the persisted value could not be decoded.
	ErrCorrupt = errors.New("stored food log is corrupt")
	// ErrNoMatch is returned by Find when no entry id has the prefix.
	ErrNoMatch = errors.New("no entry matches")
	// ErrAmbiguous is returned by Find when several entry ids share the prefix.
	ErrAmbiguous = errors.New("id prefix matches more than one entry")
)

// Persistence is the surface the store saves through.
// Load returns storage.ErrNotFound when nothing is stored yet.
type Persistence interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

// Store is the ordered food log, newest first.
type Store struct {
	mu      sync.RWMutex
	entries []food.Entry
	p       Persistence
}

// Open loads the log from p. Nothing stored yields an empty log.
func Open(p Persistence) (*Store, error) {
	s := &Store{p: p, entries: []food.Entry{}}

	data, err := p.Load(Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("load food log: %w", err)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if s.entries == nil {
		s.entries = []food.Entry{}
	}
	return s, nil
}

// Add prepends e and persists the log.
func (s *Store) Add(e food.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]food.Entry, 0, len(s.entries)+1)
	next = append(next, e)
	next = append(next, s.entries...)

	if err := s.persist(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Remove deletes the entry with the given id and persists the log.
// An unknown id changes nothing and saves nothing.
func (s *Store) Remove(id string) (food.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, e := range s.entries {
		if e.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return food.Entry{}, false, nil
	}

	removed := s.entries[index]
	next := make([]food.Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:index]...)
	next = append(next, s.entries[index+1:]...)

	if err := s.persist(next); err != nil {
		return food.Entry{}, false, err
	}
	s.entries = next
	return removed, true, nil
}

// persist writes entries as a JSON array under Key.
// Callers swap in the new slice only after a successful save.
func (s *Store) persist(entries []food.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode food log: %w", err)
	}
	if err := s.p.Save(Key, data); err != nil {
		return fmt.Errorf("save food log: %w", err)
	}
	return nil
}

// Entries returns a copy of the log in store order.
func (s *Store) Entries() []food.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]food.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Find resolves a full id or a unique id prefix.
func (s *Store) Find(prefix string) (food.Entry, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return food.Entry{}, ErrNoMatch
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []food.Entry
	for _, e := range s.entries {
		if e.ID == prefix {
			return e, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return food.Entry{}, fmt.Errorf("%w %q", ErrNoMatch, prefix)
	case 1:
		return matches[0], nil
	default:
		return food.Entry{}, fmt.Errorf("%w: %q matches %d entries", ErrAmbiguous, prefix, len(matches))
	}
}
