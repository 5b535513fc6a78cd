// Package engine combina similitud de géneros, cercanía de rating y
// similitud de contenido en un solo ranking relativo a una película de
// referencia. Todo opera sobre el snapshot inmutable del catálogo, así que
// Recommend puede llamarse concurrente desde varios requests sin locks.
package engine

import (
	"log"
	"math"
	"runtime"
	"sort"
	"sync"

	"moodflix/internal/catalog"
	"moodflix/internal/textindex"
)

const (
	// SeedThreshold es el umbral de resolución del título semilla.
	SeedThreshold = 80
	// DefaultMinScore descarta candidatos con score combinado por debajo.
	DefaultMinScore = 0.1
	// DefaultN es la cantidad de recomendaciones por defecto.
	DefaultN = 5
)

// Weights pondera los tres componentes de similitud. No necesitan sumar 1.
type Weights struct {
	Genre   float64 `json:"genre"`
	Rating  float64 `json:"rating"`
	Content float64 `json:"content"`
}

// DefaultWeights son los pesos por defecto {género, rating, contenido}.
var DefaultWeights = Weights{Genre: 0.4, Rating: 0.2, Content: 0.4}

// Ranked es una película con su score combinado en [0,1].
type Ranked struct {
	Movie catalog.Movie
	Score float64
}

type Engine struct {
	cat      *catalog.Catalog
	index    *textindex.Index
	minScore float64
	workers  int
}

// New crea el motor sobre un catálogo y su índice de contenido (atados al
// mismo orden de filas). minScore <= 0 usa DefaultMinScore.
func New(cat *catalog.Catalog, index *textindex.Index, minScore float64) *Engine {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	e := &Engine{
		cat:      cat,
		index:    index,
		minScore: minScore,
		workers:  runtime.NumCPU(),
	}
	log.Printf("[ENGINE] motor de similitud listo con %d películas", cat.Len())
	return e
}

// Recommend resuelve el título semilla (umbral 80), toma el primer match
// como referencia y rankea el resto del catálogo por la suma ponderada de
// los tres componentes. La semilla nunca aparece en la salida. Para un
// catálogo y pesos fijos el resultado es completamente determinista: los
// scores se escriben por posición y el orden final es un sort estable.
func (e *Engine) Recommend(seed string, n int, w Weights) []Ranked {
	if n <= 0 {
		n = DefaultN
	}
	if w == (Weights{}) {
		w = DefaultWeights
	}

	matches := e.cat.SearchIndices(seed, SeedThreshold)
	if len(matches) == 0 {
		return nil
	}
	ref := matches[0]

	scores := e.scoreAll(ref, w)

	ranked := make([]Ranked, 0, len(scores))
	for i, score := range scores {
		if i == ref || score < e.minScore {
			continue
		}
		ranked = append(ranked, Ranked{Movie: e.cat.At(i), Score: score})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// scoreAll calcula el score combinado de cada fila contra ref, repartiendo
// el catálogo en bloques entre workers. Cada posición tiene un único
// escritor, así que no hace falta lock.
func (e *Engine) scoreAll(ref int, w Weights) []float64 {
	total := e.cat.Len()
	scores := make([]float64, total)

	refMovie := e.cat.At(ref)
	refGenres := make(map[string]struct{}, len(refMovie.Genres))
	for _, g := range refMovie.Genres {
		refGenres[g] = struct{}{}
	}

	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	chunk := (total + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				m := e.cat.At(i)
				score := w.Genre*jaccard(refGenres, m.Genres) +
					w.Rating*ratingSimilarity(refMovie.VoteAverage, m.VoteAverage) +
					w.Content*e.index.Similarity(ref, i)
				scores[i] = score
			}
		}(start, end)
	}
	wg.Wait()
	return scores
}

// jaccard es |A∩B| / |A∪B| sobre los sets de géneros; 0 si alguno es vacío.
func jaccard(ref map[string]struct{}, genres []string) float64 {
	if len(ref) == 0 || len(genres) == 0 {
		return 0
	}
	inter := 0
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		if _, ok := ref[g]; ok {
			inter++
		}
	}
	union := len(ref) + len(seen) - inter
	return float64(inter) / float64(union)
}

// ratingSimilarity es 1 - |a-b|/10 acotado a >= 0; los ratings viven en la
// escala fija 0-10.
func ratingSimilarity(a, b float64) float64 {
	sim := 1 - math.Abs(a-b)/10
	if sim < 0 {
		return 0
	}
	return sim
}
