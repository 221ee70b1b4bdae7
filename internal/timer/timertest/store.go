package timertest

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/alexanderramin/focus/internal/repository"
)

// Store is an in-memory timer.Store that counts writes and can be told to
// fail them.
type Store struct {
	mu       sync.Mutex
	data     map[string]string
	writes   int
	failErr  error
	failRead error
}

// NewStore returns a Store seeded with the given values.
func NewStore(seed map[string]string) *Store {
	data := make(map[string]string, len(seed))
	maps.Copy(data, seed)
	return &Store{data: data}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRead != nil {
		return "", s.failRead
	}
	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("setting %q: %w", key, repository.ErrNotFound)
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failErr != nil {
		return s.failErr
	}
	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failErr != nil {
		return s.failErr
	}
	delete(s.data, key)
	return nil
}

// FailWrites makes every subsequent Set and Delete return err (nil restores).
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// FailReads makes every subsequent Get return err (nil restores).
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRead = err
}

// Value returns the stored value for key.
func (s *Store) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Snapshot copies the stored data.
func (s *Store) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}

// Writes reports how many Set/Delete calls were attempted.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
