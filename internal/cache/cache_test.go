package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Fatal("Get de clave inexistente devolvió ok")
	}

	m.Set(ctx, "k", "v", 0)
	got, ok := m.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("Get = (%q, %v), want (v, true)", got, ok)
	}

	// Sobrescritura: gana el último escritor.
	m.Set(ctx, "k", "v2", 0)
	if got, _ := m.Get(ctx, "k"); got != "v2" {
		t.Errorf("Get tras sobrescribir = %q, want v2", got)
	}
}

func TestMemoryTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Set(ctx, "k", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("entrada expirada sigue visible")
	}
}

func TestMemoryConcurrente(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("k%d", i%10)
				m.Set(ctx, key, fmt.Sprintf("g%d", g), 0)
				m.Get(ctx, key)
			}
		}(g)
	}
	wg.Wait()

	// Alguna de las goroutines debe haber dejado su valor.
	if _, ok := m.Get(ctx, "k0"); !ok {
		t.Error("clave escrita concurrentemente no está")
	}
}
