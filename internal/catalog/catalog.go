// Package catalog mantiene la colección inmutable de películas en memoria.
// Se construye una sola vez al arranque (desde CSV o MongoDB) y después solo
// se lee; ninguna operación la muta.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Movie es una fila ya limpia del catálogo.
type Movie struct {
	ID          int      `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Overview    string   `bson:"overview" json:"overview"`
	Genres      []string `bson:"genres" json:"genres"`
	GenresStr   string   `bson:"genres_str" json:"genres_str"`
	VoteAverage float64  `bson:"vote_average" json:"vote_average"`
	VoteCount   int      `bson:"vote_count" json:"vote_count"`
	Popularity  float64  `bson:"popularity" json:"popularity"`
}

// DataError indica datos de entrada malformados al cargar el catálogo.
// Es fatal: el servicio no arranca sin un catálogo válido.
type DataError struct {
	Column string
	Err    error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog: columna %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("catalog: falta la columna requerida %q", e.Column)
}

func (e *DataError) Unwrap() error { return e.Err }

// Catalog es la colección inmutable. El orden de movies es el orden de
// llegada tras la limpieza y es la referencia posicional para el índice de
// contenido.
type Catalog struct {
	movies  []Movie
	byTitle map[string][]int
	byID    map[int]int
}

// build aplica las reglas de limpieza sobre filas ya parseadas: descarta
// filas sin título o sin overview y colapsa títulos duplicados a la primera
// aparición.
func build(rows []Movie) *Catalog {
	c := &Catalog{
		byTitle: make(map[string][]int),
		byID:    make(map[int]int),
	}
	seen := make(map[string]struct{}, len(rows))
	for _, m := range rows {
		m.Title = strings.TrimSpace(m.Title)
		m.Overview = strings.TrimSpace(m.Overview)
		if m.Title == "" || m.Overview == "" {
			continue
		}
		key := strings.ToLower(m.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if m.GenresStr == "" {
			m.GenresStr = genresDisplay(m.Genres)
		}
		idx := len(c.movies)
		c.movies = append(c.movies, m)
		c.byTitle[key] = append(c.byTitle[key], idx)
		if m.ID != 0 {
			if _, ok := c.byID[m.ID]; !ok {
				c.byID[m.ID] = idx
			}
		}
	}
	return c
}

// Len devuelve el número de películas del catálogo.
func (c *Catalog) Len() int { return len(c.movies) }

// At devuelve la película en la posición i.
func (c *Catalog) At(i int) Movie { return c.movies[i] }

// Movies devuelve una copia del slice de películas en orden de catálogo.
func (c *Catalog) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// ByID busca una película por su id de origen.
func (c *Catalog) ByID(id int) (Movie, bool) {
	if i, ok := c.byID[id]; ok {
		return c.movies[i], true
	}
	return Movie{}, false
}

// genresDisplay arma el string de presentación "g1, g2, ..." o "Unknown".
func genresDisplay(genres []string) string {
	if len(genres) == 0 {
		return "Unknown"
	}
	return strings.Join(genres, ", ")
}

// parseGenres interpreta el campo de géneros serializado. Acepta la forma
// JSON con comillas simples de los dumps originales (listas de nombres o de
// objetos {id, name}) y la forma separada por pipes o comas como fallback.
func parseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		normalized := strings.ReplaceAll(raw, "'", `"`)
		var asNames []string
		if err := json.Unmarshal([]byte(normalized), &asNames); err == nil {
			return dedupeGenres(asNames)
		}
		var asObjects []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(normalized), &asObjects); err == nil {
			names := make([]string, 0, len(asObjects))
			for _, g := range asObjects {
				names = append(names, g.Name)
			}
			return dedupeGenres(names)
		}
		return nil
	}
	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	return dedupeGenres(strings.Split(raw, sep))
}

func dedupeGenres(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// parseFloat convierte a float con default 0; los datos de origen traen
// numéricos corruptos y no deben tumbar la carga.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// vote_count llega a veces como "123.0"
	return int(parseFloat(s))
}
