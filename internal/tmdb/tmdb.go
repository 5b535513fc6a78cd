// Package tmdb es el colaborador de enriquecimiento de metadata: dado un id
// o un título devuelve póster y fecha de estreno desde The Movie Database.
// El ranking nunca depende de este paquete; si TMDB no responde, la API
// sirve igual con los campos del catálogo.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	baseURL       = "https://api.themoviedb.org/3"
	posterBaseURL = "https://image.tmdb.org/t/p/w500"
)

// ErrNotFound indica que TMDB no conoce la película pedida.
var ErrNotFound = errors.New("tmdb: película no encontrada")

// Details es el subconjunto de la respuesta de TMDB que exponemos.
type Details struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	PosterURL   string  `json:"poster_url"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type Client struct {
	apiKey string
	base   string
	http   *http.Client
}

// NewClient crea el cliente con un timeout propio; el core no maneja
// timeouts, son responsabilidad de este colaborador.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		base:   baseURL,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled indica si hay api key configurada; sin key el cliente no llama a
// la red y los handlers omiten el enriquecimiento.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Movie trae los detalles de una película por id de TMDB.
func (c *Client) Movie(ctx context.Context, id int) (Details, error) {
	endpoint := fmt.Sprintf("%s/movie/%d?api_key=%s", c.base, id, url.QueryEscape(c.apiKey))
	var d Details
	if err := c.get(ctx, endpoint, &d); err != nil {
		return Details{}, err
	}
	d.fillPosterURL()
	return d, nil
}

// SearchFirst busca por título y devuelve el primer resultado.
func (c *Client) SearchFirst(ctx context.Context, title string) (Details, error) {
	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		c.base, url.QueryEscape(c.apiKey), url.QueryEscape(title))
	var payload struct {
		Results []Details `json:"results"`
	}
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return Details{}, err
	}
	if len(payload.Results) == 0 {
		return Details{}, ErrNotFound
	}
	d := payload.Results[0]
	d.fillPosterURL()
	return d, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("tmdb: armando request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("tmdb: status inesperado %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb: decodificando respuesta: %w", err)
	}
	return nil
}

func (d *Details) fillPosterURL() {
	if d.PosterPath != "" {
		d.PosterURL = posterBaseURL + d.PosterPath
	}
}
