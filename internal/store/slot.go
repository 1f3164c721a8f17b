// Package store persists the task collection into a durable key-value slot.
package store

import (
	"fmt"
	"sync"
)

// Slot keys.
const (
	TasksKey = "tasks"
	TagsKey  = "tags"
)

// Slot is a durable key-value slot on the host device.
// Put overwrites the whole value for key.
type Slot interface {
	Get(key string) (data []byte, ok bool, err error)
	Put(key string, data []byte) error
	Close() error
}

// MemorySlot keeps values in process memory. Used by tests and as a scratch backend.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: map[string][]byte{}}
}

func (m *MemorySlot) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemorySlot) Put(key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("put: empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemorySlot) Close() error { return nil }
