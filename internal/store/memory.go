package store

import (
	"context"
	"sync"
)

// Memory keeps collections in process memory. Nothing survives a restart.
type Memory struct {
	mu     sync.Mutex
	values map[Key][]byte
	closed bool
}

var _ Gateway = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{values: make(map[Key][]byte)}
}

func (m *Memory) Get(_ context.Context, key Key) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, ErrUnavailable
	}

	v, ok := m.values[key]
	return clone(v), ok, nil
}

func (m *Memory) Set(ctx context.Context, key Key, value []byte) error {
	return m.SetMany(ctx, map[Key][]byte{key: value})
}

func (m *Memory) SetMany(_ context.Context, values map[Key][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrUnavailable
	}

	for k, v := range values {
		m.values[k] = clone(v)
	}
	return nil
}

func (m *Memory) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrUnavailable
	}
	return nil
}

// Close makes all further calls fail with ErrUnavailable.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
