package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
)

var requiredColumns = []string{
	"title", "overview", "genres", "vote_average", "vote_count", "popularity",
}

// Load construye el catálogo desde un CSV con cabecera. Falla con *DataError
// si falta alguna columna requerida; las filas malformadas individuales se
// limpian o descartan, nunca abortan la carga.
func Load(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &DataError{Column: "header", Err: err}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, &DataError{Column: required}
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Movie
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DataError{Column: "row", Err: fmt.Errorf("fila %d: %w", len(rows)+2, err)}
		}
		rows = append(rows, Movie{
			ID:          parseInt(field(record, "id")),
			Title:       field(record, "title"),
			Overview:    field(record, "overview"),
			Genres:      parseGenres(field(record, "genres")),
			VoteAverage: parseFloat(field(record, "vote_average")),
			VoteCount:   parseInt(field(record, "vote_count")),
			Popularity:  parseFloat(field(record, "popularity")),
		})
	}
	return build(rows), nil
}
