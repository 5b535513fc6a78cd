// Package recommend expone las recomendaciones por título, por emoción y el
// detalle de película sobre HTTP. El motor es puro; acá vive el glue: la
// resolución de umbrales de configuración, el formato de presentación y el
// enriquecimiento opcional con TMDB.
package recommend

import (
	"context"
	"errors"

	"moodflix/internal/catalog"
	"moodflix/internal/emotion"
	"moodflix/internal/engine"
	"moodflix/internal/tmdb"
)

// ErrTitleNotFound indica que la consulta no resolvió a ninguna película.
var ErrTitleNotFound = errors.New("recommend: title not found")

// Options son los parámetros externos del servicio; vienen de config, nunca
// hardcodeados en el motor.
type Options struct {
	Recommendations int
	MinRating       float64
	SearchThreshold int
	DetailThreshold int
	Weights         engine.Weights
}

// SearchResponse es la respuesta de búsqueda por título.
type SearchResponse struct {
	Query           string   `json:"query"`
	Match           Result   `json:"match"`
	Recommendations []Result `json:"recommendations"`
	Message         string   `json:"message,omitempty"`
}

// EmotionResponse es la respuesta de recomendación por emoción.
type EmotionResponse struct {
	Emotion         string   `json:"emotion"`
	Genres          []string `json:"genres"`
	Recommendations []Result `json:"recommendations"`
	Message         string   `json:"message,omitempty"`
}

// DetailResponse es la respuesta del detalle de película.
type DetailResponse struct {
	Movie           Result   `json:"movie"`
	Recommendations []Result `json:"recommendations"`
}

type Service interface {
	SearchRecommendations(ctx context.Context, query string, n int) (*SearchResponse, error)
	EmotionRecommendations(ctx context.Context, token string, n int, minRating float64) (*EmotionResponse, error)
	MovieDetail(ctx context.Context, id int) (*DetailResponse, error)
	Emotions() []string
}

type service struct {
	cat      *catalog.Catalog
	eng      *engine.Engine
	emo      *emotion.Recommender
	enricher *tmdb.CachedClient
	opts     Options
}

// NewService arma el servicio. enricher puede ser nil (sin api key de TMDB
// el servicio responde solo con campos del catálogo).
func NewService(cat *catalog.Catalog, eng *engine.Engine, emo *emotion.Recommender, enricher *tmdb.CachedClient, opts Options) Service {
	if opts.Recommendations <= 0 {
		opts.Recommendations = engine.DefaultN
	}
	if opts.SearchThreshold <= 0 {
		opts.SearchThreshold = engine.SeedThreshold
	}
	if opts.DetailThreshold <= 0 {
		opts.DetailThreshold = 95
	}
	return &service{cat: cat, eng: eng, emo: emo, enricher: enricher, opts: opts}
}

func (s *service) SearchRecommendations(ctx context.Context, query string, n int) (*SearchResponse, error) {
	if n <= 0 {
		n = s.opts.Recommendations
	}

	matches := s.cat.Search(query, s.opts.SearchThreshold)
	if len(matches) == 0 {
		return nil, ErrTitleNotFound
	}
	seed := matches[0]

	ranked := s.eng.Recommend(seed.Title, n, s.opts.Weights)
	resp := &SearchResponse{
		Query:           query,
		Match:           s.formatMovie(ctx, seed, 0),
		Recommendations: s.formatRanked(ctx, ranked),
	}
	if len(ranked) == 0 {
		resp.Message = "película encontrada, pero sin recomendaciones similares"
	}
	return resp, nil
}

func (s *service) EmotionRecommendations(ctx context.Context, token string, n int, minRating float64) (*EmotionResponse, error) {
	if n <= 0 {
		n = s.opts.Recommendations
	}
	if minRating <= 0 {
		minRating = s.opts.MinRating
	}

	genres, err := emotion.GenresFor(token)
	if err != nil {
		return nil, err
	}
	ranked := s.emo.RecommendGenres(genres, n, minRating)

	resp := &EmotionResponse{
		Emotion:         token,
		Genres:          genres,
		Recommendations: s.formatEmotionRanked(ctx, ranked),
	}
	if len(ranked) == 0 {
		resp.Message = "emoción reconocida, pero ninguna película pasó el filtro"
	}
	return resp, nil
}

func (s *service) MovieDetail(ctx context.Context, id int) (*DetailResponse, error) {
	local, inCatalog := s.cat.ByID(id)

	var movie Result
	title := ""
	switch {
	case inCatalog:
		movie = s.formatMovie(ctx, local, 0)
		title = local.Title
	case s.enricher != nil && s.enricher.Enabled():
		details, err := s.enricher.Movie(ctx, id)
		if err != nil {
			return nil, ErrTitleNotFound
		}
		movie = resultFromDetails(details)
		title = details.Title
	default:
		return nil, ErrTitleNotFound
	}

	// Back-resolution: el título externo se reconcilia contra el catálogo
	// con umbral estricto antes de recomendar.
	var recs []Result
	if matches := s.cat.Search(title, s.opts.DetailThreshold); len(matches) > 0 {
		ranked := s.eng.Recommend(matches[0].Title, s.opts.Recommendations, s.opts.Weights)
		recs = s.formatRanked(ctx, ranked)
	}

	return &DetailResponse{Movie: movie, Recommendations: recs}, nil
}

func (s *service) Emotions() []string {
	return emotion.Emotions()
}
