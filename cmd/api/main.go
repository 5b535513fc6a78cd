// Servidor HTTP de moodflix: carga el catálogo, construye los motores y
// expone la API de recomendaciones.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"moodflix/internal/catalog"
	"moodflix/internal/config"
	"moodflix/internal/emotion"
	"moodflix/internal/engine"
	"moodflix/internal/plattform"
	httpserver "moodflix/internal/server/http"
	"moodflix/internal/textindex"
	"moodflix/pkg/styles"
)

func main() {
	configPath := flag.String("config", "config.json", "Ruta al archivo de configuración")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "[MAIN] Error cargando configuración: %v", err))
	}
	config.PrintConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "[MAIN] Error cargando el catálogo: %v", err))
	}
	styles.PrintFS("success", "[MAIN] Catálogo cargado: %d películas", cat.Len())

	docs := make([]string, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		docs[i] = cat.At(i).Overview
	}
	index := textindex.Build(docs)
	eng := engine.New(cat, index, cfg.MinScore)
	emo := emotion.NewRecommender(cat)

	router := httpserver.NewRouter(ctx, httpserver.Deps{
		Config:  cfg,
		Catalog: cat,
		Engine:  eng,
		Emotion: emo,
	})

	log.Print(styles.SprintfS("info", "[HTTP] Escuchando en %s", cfg.HTTPAddr))
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(styles.SprintfS("error", "[HTTP] Error: %v", err))
	}
}

// loadCatalog prefiere MongoDB cuando está configurado y cae al CSV local si
// la colección no está disponible o viene vacía.
func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	if cfg.MongoURI != "" {
		client, err := plattform.NewClient(ctx, cfg.MongoURI)
		if err == nil {
			defer client.Disconnect(ctx)
			coll := plattform.GetCollection(client, cfg.MongoDB, "movies")
			cat, err := catalog.LoadFromMongo(ctx, coll)
			if err == nil && cat.Len() > 0 {
				log.Printf("[MAIN] Catálogo cargado desde MongoDB (%s.movies)", cfg.MongoDB)
				return cat, nil
			}
			log.Printf("[MAIN] MongoDB sin catálogo utilizable, usando CSV: %v", err)
		} else {
			log.Printf("[MAIN] No se pudo conectar a MongoDB para el catálogo: %v", err)
		}
	}

	file, err := os.Open(cfg.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("abriendo %s: %w", cfg.CSVPath, err)
	}
	defer file.Close()
	return catalog.Load(file)
}
