// Package storage defines the key-value medium the stores persist to.
package storage

// KeyValue is a synchronous string key-value store. Get reports ok=false
// for a missing key; err is reserved for medium failures.
type KeyValue interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is a map-backed KeyValue. The zero value is ready to use.
type Memory struct {
	m map[string]string
}

// NewMemory returns a Memory seeded with a copy of initial.
func NewMemory(initial map[string]string) *Memory {
	m := &Memory{m: make(map[string]string, len(initial))}
	for k, v := range initial {
		m.m[k] = v
	}
	return m
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.m[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.m == nil {
		m.m = make(map[string]string)
	}
	m.m[key] = value
	return nil
}
