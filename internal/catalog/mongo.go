package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// LoadFromMongo construye el catálogo leyendo la colección de películas
// (cargada por cmd/ingest). Las filas pasan por la misma limpieza que el
// CSV: el catálogo nunca confía en que el origen venga limpio.
func LoadFromMongo(ctx context.Context, coll *mongo.Collection) (*Catalog, error) {
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, &DataError{Column: "movies", Err: fmt.Errorf("find: %w", err)}
	}
	defer cursor.Close(ctx)

	var rows []Movie
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, &DataError{Column: "movies", Err: fmt.Errorf("decode: %w", err)}
	}
	return build(rows), nil
}
