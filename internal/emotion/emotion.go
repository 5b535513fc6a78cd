// Package emotion mapea un estado emocional libre a un set de géneros y
// rankea el catálogo por cobertura de géneros, rating y popularidad.
package emotion

import (
	"errors"
	"math"
	"sort"
	"strings"

	"moodflix/internal/catalog"
)

// ErrNoMapping indica que el token emocional no corresponde a ningún set de
// géneros. Es distinto de "match pero sin resultados", que es un slice vacío
// sin error.
var ErrNoMapping = errors.New("emotion: sin mapeo de géneros para la emoción")

// DefaultMinRating es el rating mínimo por defecto del filtro.
const DefaultMinRating = 6.0

// genreMap es la tabla fija emoción → géneros. Cada emoción se acepta en sus
// dos formas (francés e inglés) apuntando al mismo set; ninguna es canónica.
var genreMap = map[string][]string{
	"joie":      {"Comedy", "Adventure", "Family", "Animation"},
	"joy":       {"Comedy", "Adventure", "Family", "Animation"},
	"colère":    {"Action", "Thriller", "Crime"},
	"anger":     {"Action", "Thriller", "Crime"},
	"tristesse": {"Drama", "Romance"},
	"sadness":   {"Drama", "Romance"},
	"peur":      {"Horror", "Thriller", "Mystery"},
	"fear":      {"Horror", "Thriller", "Mystery"},
}

// sortedKeys fija el orden de recorrido del fallback por substring; los maps
// de Go no tienen orden estable entre corridas.
var sortedKeys = func() []string {
	keys := make([]string, 0, len(genreMap))
	for k := range genreMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// Ranked es una película con su score emocional.
type Ranked struct {
	Movie catalog.Movie
	Score float64
}

type Recommender struct {
	cat *catalog.Catalog
}

func NewRecommender(cat *catalog.Catalog) *Recommender {
	return &Recommender{cat: cat}
}

// Emotions devuelve los tokens emocionales aceptados, ordenados.
func Emotions() []string {
	out := make([]string, len(sortedKeys))
	copy(out, sortedKeys)
	return out
}

// GenresFor resuelve el token emocional a su set de géneros. Primero busca
// la clave exacta normalizada; si no hay, prueba contención de substring en
// ambas direcciones sobre las claves en orden fijo y gana la primera.
// Devuelve ErrNoMapping si nada matchea.
func GenresFor(token string) ([]string, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if normalized == "" {
		return nil, ErrNoMapping
	}
	if genres, ok := genreMap[normalized]; ok {
		return genres, nil
	}
	for _, key := range sortedKeys {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return genreMap[key], nil
		}
	}
	return nil, ErrNoMapping
}

// Recommend filtra el catálogo a las películas cuyo set de géneros
// intersecta el de la emoción y cuyo rating alcanza minRating, las puntúa
//
//	0.5·(géneros matcheados / géneros mapeados) + 0.3·(rating/10) + 0.2·(ln(1+popularidad)/10)
//
// y devuelve las n mejores en orden estable. Un slice vacío sin error
// significa "emoción válida pero nada pasó el filtro".
func (r *Recommender) Recommend(token string, n int, minRating float64) ([]Ranked, error) {
	genres, err := GenresFor(token)
	if err != nil {
		return nil, err
	}
	return r.RecommendGenres(genres, n, minRating), nil
}

// RecommendGenres es el ranking sobre un set de géneros ya resuelto, para
// los callers que ya pasaron por GenresFor y no deben resolver dos veces.
func (r *Recommender) RecommendGenres(genres []string, n int, minRating float64) []Ranked {
	if n <= 0 {
		n = 5
	}

	mapped := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		mapped[g] = struct{}{}
	}

	var ranked []Ranked
	for _, m := range r.cat.Movies() {
		if m.VoteAverage < minRating {
			continue
		}
		matched := 0
		for _, g := range m.Genres {
			if _, ok := mapped[g]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		score := 0.5*(float64(matched)/float64(len(mapped))) +
			0.3*(m.VoteAverage/10) +
			0.2*(math.Log1p(m.Popularity)/10)
		ranked = append(ranked, Ranked{Movie: m, Score: score})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
