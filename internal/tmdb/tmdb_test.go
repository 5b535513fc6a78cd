package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"moodflix/internal/cache"
)

// newTestClient apunta el cliente a un servidor local.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.base = srv.URL
	c.http = srv.Client()
	return c
}

func TestMovieDecodificaYArmaPoster(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/movie/603") {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id": 603, "title": "The Matrix", "poster_path": "/abc.jpg", "release_date": "1999-03-31", "vote_average": 8.2}`))
	})
	d, err := c.Movie(context.Background(), 603)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if d.Title != "The Matrix" || d.ReleaseDate != "1999-03-31" {
		t.Errorf("detalles = %+v", d)
	}
	if d.PosterURL != posterBaseURL+"/abc.jpg" {
		t.Errorf("PosterURL = %q", d.PosterURL)
	}
}

func TestMovieNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := c.Movie(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchFirst(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "the matrix" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(`{"results": [{"id": 603, "title": "The Matrix"}, {"id": 604, "title": "The Matrix Reloaded"}]}`))
	})
	d, err := c.SearchFirst(context.Background(), "the matrix")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if d.ID != 603 {
		t.Errorf("ID = %d, want el primer resultado", d.ID)
	}
}

func TestSearchFirstSinResultados(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})
	if _, err := c.SearchFirst(context.Background(), "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCachedMovieMemoiza(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"id": 603, "title": "The Matrix"}`))
	})

	cached := NewCachedClient(c, cache.NewMemory(), time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		d, err := cached.Movie(ctx, 603)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if d.Title != "The Matrix" {
			t.Fatalf("detalles = %+v", d)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("TMDB recibió %d requests, want 1", got)
	}
}

func TestEnabled(t *testing.T) {
	if NewClient("").Enabled() {
		t.Error("cliente sin api key reporta Enabled")
	}
	if !NewClient("k").Enabled() {
		t.Error("cliente con api key no reporta Enabled")
	}
}
