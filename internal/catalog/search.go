package catalog

import (
	"sort"
	"strings"

	"moodflix/internal/fuzzy"
)

const maxFuzzyCandidates = 5

// Search resuelve un título libre contra el catálogo. Primero intenta match
// exacto insensible a mayúsculas (y devuelve ese conjunto en orden de
// catálogo); si no hay, puntúa todos los títulos con token-set ratio, se
// queda con los 5 mejores, descarta los que no llegan al umbral y devuelve
// el resto ordenado por score descendente, sin títulos repetidos.
// El umbral lo decide siempre el caller.
func (c *Catalog) Search(query string, threshold int) []Movie {
	indices := c.SearchIndices(query, threshold)
	if len(indices) == 0 {
		return nil
	}
	out := make([]Movie, 0, len(indices))
	for _, i := range indices {
		out = append(out, c.movies[i])
	}
	return out
}

// SearchIndices es como Search pero devuelve posiciones de catálogo, para
// los consumidores que necesitan la fila (índice de contenido).
func (c *Catalog) SearchIndices(query string, threshold int) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if indices, ok := c.byTitle[strings.ToLower(query)]; ok {
		out := make([]int, len(indices))
		copy(out, indices)
		return out
	}

	type scored struct {
		idx   int
		score int
	}
	candidates := make([]scored, 0, len(c.movies))
	for i, m := range c.movies {
		candidates = append(candidates, scored{i, fuzzy.TokenSetRatio(query, m.Title)})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})
	if len(candidates) > maxFuzzyCandidates {
		candidates = candidates[:maxFuzzyCandidates]
	}

	var out []int
	seen := make(map[string]struct{}, len(candidates))
	for _, cand := range candidates {
		if cand.score < threshold {
			continue
		}
		key := strings.ToLower(c.movies[cand.idx].Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cand.idx)
	}
	return out
}
