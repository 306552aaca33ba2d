package cardinal

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Memory is a [Store] which keeps properties in memory. The zero value is
// ready to use. It is safe for concurrent usage.
type Memory struct {
	mu    sync.Mutex
	props map[string][]uint32
}

func (m *Memory) Set(ctx context.Context, name string, values []uint32) error {
	if len(values) == 0 {
		return &Error{"set", name, errors.New("no values")}
	}
	if err := ctx.Err(); err != nil {
		return &Error{"set", name, err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.props == nil {
		m.props = map[string][]uint32{}
	}
	m.props[name] = slices.Clone(values)
	return nil
}

func (m *Memory) Get(ctx context.Context, name string) ([]uint32, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, &Error{"get", name, err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	values, ok := m.props[name]
	return slices.Clone(values), ok, nil
}

// Delete removes the named property.
func (m *Memory) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.props, name)
}
