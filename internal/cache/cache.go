// Package cache define el store de memoización que usa la capa de
// presentación para los lookups de metadata externos. El motor de ranking no
// conoce este paquete: la cache vive fuera del core.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store es una cache clave → valor serializado. Get devuelve ok=false en
// miss; Set es last-writer-wins, sin garantía dura de unicidad ante carrera.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Memory es la implementación en proceso: un mapa con un único mutex
// protegiendo las escrituras, estilo read-through.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = e
}
