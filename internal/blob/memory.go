package blob

import (
	"context"
	"sync"
)

// Memory keeps uploads in a map. Test double.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	// Fail, when set, is returned by Put to simulate storage outages.
	Fail error
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return "", m.Fail
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[key] = cp
	return "memory://" + key, nil
}

// Object returns a stored object for assertions.
func (m *Memory) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, ok
}
