// Package config carga la configuración del servicio: un JSON opcional para
// los parámetros del motor y variables de entorno para la infraestructura.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"moodflix/internal/engine"
)

// Config define la configuración completa del servicio.
type Config struct {
	// Parámetros del motor de recomendaciones
	Recommendations int            `json:"recommendations"`
	MinScore        float64        `json:"min_score"`
	MinRating       float64        `json:"min_rating"`
	Weights         engine.Weights `json:"weights"`

	// Umbrales de resolución de títulos
	SearchThreshold int `json:"search_threshold"`
	DetailThreshold int `json:"detail_threshold"`

	// Infraestructura (solo por variables de entorno)
	HTTPAddr    string `json:"-"`
	CSVPath     string `json:"-"`
	MongoURI    string `json:"-"`
	MongoDB     string `json:"-"`
	RedisAddr   string `json:"-"`
	JWTSecret   string `json:"-"`
	TMDBAPIKey  string `json:"-"`
	CacheTTLMin int    `json:"cache_ttl_minutes"`
}

// DefaultConfig retorna la configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Recommendations: 5,
		MinScore:        0.1,
		MinRating:       6.0,
		Weights:         engine.DefaultWeights,
		SearchThreshold: 80,
		DetailThreshold: 95,
		CacheTTLMin:     60,
		HTTPAddr:        ":8080",
		CSVPath:         "data/movies.csv",
		MongoDB:         "moodflix",
	}
}

// LoadConfig carga el JSON (archivo ausente → defaults) y después pisa la
// infraestructura con variables de entorno.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Printf("Archivo de configuración no encontrado: %s\n", path)
			fmt.Printf("Usando configuración por defecto\n")
		} else {
			file, err := os.Open(path)
			if err != nil {
				return Config{}, fmt.Errorf("error abriendo archivo de configuración: %w", err)
			}
			defer file.Close()
			if err := json.NewDecoder(file).Decode(&config); err != nil {
				return Config{}, fmt.Errorf("error decodificando configuración: %w", err)
			}
			backfill(&config)
		}
	}

	config.HTTPAddr = getenv("HTTP_ADDR", config.HTTPAddr)
	config.CSVPath = getenv("MOVIES_CSV", config.CSVPath)
	config.MongoURI = os.Getenv("MONGODB_URI")
	config.MongoDB = getenv("MONGODB_DB", config.MongoDB)
	config.RedisAddr = os.Getenv("REDIS_ADDR")
	config.JWTSecret = os.Getenv("JWT_SECRET")
	config.TMDBAPIKey = os.Getenv("TMDB_API_KEY")
	return config, nil
}

// backfill completa con defaults los bloques que el JSON dejó en cero.
func backfill(config *Config) {
	def := DefaultConfig()
	if config.Recommendations <= 0 {
		config.Recommendations = def.Recommendations
	}
	if config.MinScore <= 0 {
		config.MinScore = def.MinScore
	}
	if config.MinRating <= 0 {
		config.MinRating = def.MinRating
	}
	if config.SearchThreshold <= 0 {
		config.SearchThreshold = def.SearchThreshold
	}
	if config.DetailThreshold <= 0 {
		config.DetailThreshold = def.DetailThreshold
	}
	if config.CacheTTLMin <= 0 {
		config.CacheTTLMin = def.CacheTTLMin
	}
	w := config.Weights
	if w.Genre == 0 && w.Rating == 0 && w.Content == 0 {
		config.Weights = def.Weights
	}
}

// PrintConfig imprime la configuración actual.
func PrintConfig(config Config) {
	fmt.Printf("╔════════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║                    CONFIGURACIÓN ACTUAL                    ║\n")
	fmt.Printf("╚════════════════════════════════════════════════════════════╝\n")

	fmt.Printf("🎯 MOTOR:\n")
	fmt.Printf("   - Recomendaciones: %d\n", config.Recommendations)
	fmt.Printf("   - Min Score: %.2f\n", config.MinScore)
	fmt.Printf("   - Min Rating: %.1f\n", config.MinRating)
	fmt.Printf("   - Pesos: genre=%.2f, rating=%.2f, content=%.2f\n",
		config.Weights.Genre, config.Weights.Rating, config.Weights.Content)
	fmt.Printf("   - Umbrales: search=%d, detail=%d\n",
		config.SearchThreshold, config.DetailThreshold)

	fmt.Printf("\n🌐 INFRAESTRUCTURA:\n")
	fmt.Printf("   - HTTP: %s\n", config.HTTPAddr)
	fmt.Printf("   - CSV: %s\n", config.CSVPath)
	fmt.Printf("   - MongoDB: %s\n", boolStr(config.MongoURI != ""))
	fmt.Printf("   - Redis: %s\n", boolStr(config.RedisAddr != ""))
	fmt.Printf("   - TMDB: %s\n", boolStr(config.TMDBAPIKey != ""))

	fmt.Printf("\n💻 SISTEMA:\n")
	fmt.Printf("   - CPU Cores: %d\n", runtime.NumCPU())
	fmt.Printf("   - GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
}

func boolStr(on bool) string {
	if on {
		return "configurado"
	}
	return "no configurado"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
