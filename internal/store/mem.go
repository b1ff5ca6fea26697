package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// Mem is an in-memory KV. The zero value is not usable; call NewMem.
type Mem struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
	tx   bool
}

// NewMem returns an empty in-memory KV.
func NewMem() *Mem {
	return &Mem{data: make(map[string]map[string][]byte)}
}

func (m *Mem) Get(_ context.Context, bucket, key string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[bucket][key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

func (m *Mem) Put(_ context.Context, bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[bucket]
	if !ok {
		b = make(map[string][]byte)
		m.data[bucket] = b
	}
	b[key] = raw
	return nil
}

func (m *Mem) Delete(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[bucket], key)
	return nil
}

func (m *Mem) Clear(_ context.Context, bucket string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.data[bucket])
	delete(m.data, bucket)
	return n, nil
}

func (m *Mem) Keys(_ context.Context, bucket string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data[bucket]))
	for k := range m.data[bucket] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Update stages writes on a copy and swaps it in when fn succeeds.
// Concurrent updates are serialized.
func (m *Mem) Update(_ context.Context, fn func(tx KV) error) error {
	if m.tx {
		return fn(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &Mem{data: cloneData(m.data), tx: true}
	if err := fn(staged); err != nil {
		return err
	}
	m.data = staged.data
	return nil
}

func cloneData(src map[string]map[string][]byte) map[string]map[string][]byte {
	dst := make(map[string]map[string][]byte, len(src))
	for bucket, kv := range src {
		b := make(map[string][]byte, len(kv))
		for k, v := range kv {
			b[k] = v
		}
		dst[bucket] = b
	}
	return dst
}
