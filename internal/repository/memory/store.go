package memory

import (
	"sync"

	"cipherstudio/internal/domain/models/playground"
)

// Data holds the records of an in-memory store
type Data struct {
	Projects map[string]playground.Project
	Files    map[string]playground.FileNode
}

func newData() *Data {
	return &Data{
		Projects: make(map[string]playground.Project),
		Files:    make(map[string]playground.FileNode),
	}
}

func (d *Data) clone() *Data {
	c := &Data{
		Projects: make(map[string]playground.Project, len(d.Projects)),
		Files:    make(map[string]playground.FileNode, len(d.Files)),
	}
	for k, v := range d.Projects {
		c.Projects[k] = v
	}
	for k, v := range d.Files {
		c.Files[k] = v
	}
	return c
}

// Store is a process-local record store used for development and tests.
// Records are held by value so callers never share memory with the store.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *Data
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: newData()}
}

// View runs fn with read access to the store
func (s *Store) View(fn func(d *Data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// Update runs fn with write access to the store
func (s *Store) Update(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) snapshot() *Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) restore(d *Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
}

// Reset drops every record
func (s *Store) Reset() {
	s.restore(newData())
}
