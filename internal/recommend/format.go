package recommend

import (
	"context"
	"fmt"
	"unicode/utf8"

	"moodflix/internal/catalog"
	"moodflix/internal/emotion"
	"moodflix/internal/engine"
	"moodflix/internal/tmdb"
)

const maxOverviewLen = 300

// Result es la representación de presentación de una película: overview
// truncado, rating "X.X/10" y score como porcentaje.
type Result struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	Genres      string `json:"genres"`
	Rating      string `json:"rating"`
	Score       string `json:"score,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// formatMovie arma el Result de una película del catálogo. score 0 omite el
// campo (el match de búsqueda no tiene score propio).
func (s *service) formatMovie(ctx context.Context, m catalog.Movie, score float64) Result {
	r := Result{
		ID:       m.ID,
		Title:    m.Title,
		Overview: truncate(m.Overview),
		Genres:   m.GenresStr,
		Rating:   fmt.Sprintf("%.1f/10", m.VoteAverage),
	}
	if score > 0 {
		r.Score = fmt.Sprintf("%.1f%%", score*100)
	}
	s.enrich(ctx, &r, m.Title)
	return r
}

func (s *service) formatRanked(ctx context.Context, ranked []engine.Ranked) []Result {
	out := make([]Result, 0, len(ranked))
	for _, res := range ranked {
		out = append(out, s.formatMovie(ctx, res.Movie, res.Score))
	}
	return out
}

func (s *service) formatEmotionRanked(ctx context.Context, ranked []emotion.Ranked) []Result {
	out := make([]Result, 0, len(ranked))
	for _, res := range ranked {
		out = append(out, s.formatMovie(ctx, res.Movie, res.Score))
	}
	return out
}

// enrich completa póster y fecha desde TMDB cuando hay api key; cualquier
// fallo se ignora, los campos del catálogo alcanzan para responder.
func (s *service) enrich(ctx context.Context, r *Result, title string) {
	if s.enricher == nil || !s.enricher.Enabled() {
		return
	}
	details, err := s.enricher.SearchFirst(ctx, title)
	if err != nil {
		return
	}
	r.PosterURL = details.PosterURL
	r.ReleaseDate = details.ReleaseDate
}

func resultFromDetails(d tmdb.Details) Result {
	return Result{
		ID:          d.ID,
		Title:       d.Title,
		Overview:    truncate(d.Overview),
		Genres:      "Unknown",
		Rating:      fmt.Sprintf("%.1f/10", d.VoteAverage),
		PosterURL:   d.PosterURL,
		ReleaseDate: d.ReleaseDate,
	}
}

// truncate corta el overview sin partir runas: el corte retrocede hasta el
// inicio de la runa que quedó a caballo del límite.
func truncate(overview string) string {
	if len(overview) <= maxOverviewLen {
		return overview
	}
	cut := maxOverviewLen
	for cut > 0 && !utf8.RuneStart(overview[cut]) {
		cut--
	}
	return overview[:cut] + "..."
}
