package cache

import "sync"

// Memory is an in-process Cache with an optional capacity limit, used in
// tests and as a fallback when no cache path is configured.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	capacity int // total bytes across all values; 0 means unlimited
}

func NewMemory(capacityBytes int) *Memory {
	return &Memory{
		data:     make(map[string][]byte),
		capacity: capacityBytes,
	}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.capacity > 0 {
		total := len(value)
		for k, v := range m.data {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > m.capacity {
			return ErrCapacityExceeded
		}
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
