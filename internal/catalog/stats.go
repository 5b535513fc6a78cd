package catalog

import "sort"

// Stats resume el dataset cargado; se expone en /health.
type Stats struct {
	Movies         int      `json:"movies"`
	Genres         []string `json:"genres"`
	MeanRating     float64  `json:"mean_rating"`
	MeanPopularity float64  `json:"mean_popularity"`
}

// Stats calcula las estadísticas del catálogo en cada llamada; el catálogo
// es chico y de solo lectura, no vale la pena cachear.
func (c *Catalog) Stats() Stats {
	s := Stats{Movies: len(c.movies)}
	if len(c.movies) == 0 {
		return s
	}

	genreSet := make(map[string]struct{})
	var sumRating, sumPop float64
	for _, m := range c.movies {
		for _, g := range m.Genres {
			genreSet[g] = struct{}{}
		}
		sumRating += m.VoteAverage
		sumPop += m.Popularity
	}
	for g := range genreSet {
		s.Genres = append(s.Genres, g)
	}
	sort.Strings(s.Genres)
	s.MeanRating = sumRating / float64(len(c.movies))
	s.MeanPopularity = sumPop / float64(len(c.movies))
	return s
}
