package plattform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrMissingMongoURI indica que no se configuró la URI de MongoDB.
	ErrMissingMongoURI = errors.New("database: missing MongoDB URI")
)

// NewClient establece la conexión a MongoDB y verifica con un ping.
// El caller es dueño del cliente y debe llamar Disconnect al terminar.
func NewClient(ctx context.Context, uri string) (*mongo.Client, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, ErrMissingMongoURI
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opt := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opt)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return client, nil
}

// GetCollection devuelve el handle de una colección; existe para dejar
// explícito de dónde salen las colecciones.
func GetCollection(client *mongo.Client, dbName, collName string) *mongo.Collection {
	return client.Database(dbName).Collection(collName)
}
