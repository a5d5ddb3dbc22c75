// Package storagetest provides in-memory backends for exercising the
// storage adapter and the content store without a database.
package storagetest

import (
	"context"
	"sync"
)

// MemoryRemote is an in-memory RemoteStore. Set the *Err fields to make
// the matching call fail.
type MemoryRemote struct {
	mu   sync.Mutex
	rows map[string][]byte

	GetErr     error
	ReplaceErr error
	DeleteErr  error

	Gets, Replaces, Deletes int
}

// NewMemoryRemote returns an empty remote.
func NewMemoryRemote() *MemoryRemote {
	return &MemoryRemote{rows: make(map[string][]byte)}
}

func (m *MemoryRemote) GetDocument(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	raw, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

func (m *MemoryRemote) ReplaceDocument(_ context.Context, id string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replaces++
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.rows[id] = append([]byte(nil), content...)
	return nil
}

func (m *MemoryRemote) DeleteDocument(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.rows, id)
	return nil
}

// Put stores raw content under id.
func (m *MemoryRemote) Put(id string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[id] = []byte(content)
}

// Row returns the content stored under id.
func (m *MemoryRemote) Row(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.rows[id]
	return string(raw), ok
}

// Calls returns the number of calls of any kind.
func (m *MemoryRemote) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Gets + m.Replaces + m.Deletes
}

// MemoryLocal is an in-memory LocalStore.
type MemoryLocal struct {
	mu     sync.Mutex
	values map[string]string

	GetErr error
	SetErr error

	Gets int
}

// NewMemoryLocal returns an empty local store.
func NewMemoryLocal() *MemoryLocal {
	return &MemoryLocal{values: make(map[string]string)}
}

func (m *MemoryLocal) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryLocal) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *MemoryLocal) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Value returns the value stored under key.
func (m *MemoryLocal) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}
