package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"moodflix/internal/cache"
)

// CachedClient memoiza las respuestas de TMDB en un cache.Store (memoria o
// Redis). Los valores se guardan como JSON para que cualquier backend sirva.
type CachedClient struct {
	client *Client
	store  cache.Store
	ttl    time.Duration
}

func NewCachedClient(client *Client, store cache.Store, ttl time.Duration) *CachedClient {
	return &CachedClient{client: client, store: store, ttl: ttl}
}

func (c *CachedClient) Enabled() bool { return c.client.Enabled() }

// Movie es el read-through de Client.Movie: en miss consulta TMDB, guarda y
// devuelve. Los errores no se cachean.
func (c *CachedClient) Movie(ctx context.Context, id int) (Details, error) {
	key := fmt.Sprintf("tmdb:movie:%d", id)
	if raw, ok := c.store.Get(ctx, key); ok {
		var d Details
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			return d, nil
		}
	}

	d, err := c.client.Movie(ctx, id)
	if err != nil {
		return Details{}, err
	}
	c.put(ctx, key, d)
	return d, nil
}

// SearchFirst memoiza por título ya normalizado por el caller.
func (c *CachedClient) SearchFirst(ctx context.Context, title string) (Details, error) {
	key := "tmdb:search:" + title
	if raw, ok := c.store.Get(ctx, key); ok {
		var d Details
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			return d, nil
		}
	}

	d, err := c.client.SearchFirst(ctx, title)
	if err != nil {
		return Details{}, err
	}
	c.put(ctx, key, d)
	return d, nil
}

func (c *CachedClient) put(ctx context.Context, key string, d Details) {
	if raw, err := json.Marshal(d); err == nil {
		c.store.Set(ctx, key, string(raw), c.ttl)
	}
}
