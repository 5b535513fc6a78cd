// Package httpserver arma el router de gin y cablea todas las dependencias
// del servicio: motor de recomendaciones, auth, health y monitoreo.
package httpserver

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"moodflix/internal/auth"
	"moodflix/internal/cache"
	"moodflix/internal/catalog"
	"moodflix/internal/config"
	"moodflix/internal/emotion"
	"moodflix/internal/engine"
	"moodflix/internal/health"
	"moodflix/internal/monitoring"
	"moodflix/internal/plattform"
	"moodflix/internal/recommend"
	"moodflix/internal/tmdb"
	"moodflix/pkg/styles"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const defaultMongoRetryInterval = 15 * time.Second

// Deps son las piezas ya construidas al arranque; el router solo las cablea.
type Deps struct {
	Config  config.Config
	Catalog *catalog.Catalog
	Engine  *engine.Engine
	Emotion *emotion.Recommender
}

// NewRouter construye el router completo. MongoDB y Redis son opcionales:
// sin Mongo no hay auth, sin Redis la cache de TMDB queda en memoria.
func NewRouter(ctx context.Context, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	cfg := deps.Config

	var mongoClient *mongo.Client
	if cfg.MongoURI != "" {
		mongoClient = connectMongoWithRetry(ctx, cfg.MongoURI)
	}

	var redisClient *redis.Client
	var store cache.Store = cache.NewMemory()
	if cfg.RedisAddr != "" {
		redisClient = cache.NewRedisClient()
		store = cache.NewRedis(redisClient)
	}

	var enricher *tmdb.CachedClient
	if cfg.TMDBAPIKey != "" {
		ttl := time.Duration(cfg.CacheTTLMin) * time.Minute
		enricher = tmdb.NewCachedClient(tmdb.NewClient(cfg.TMDBAPIKey), store, ttl)
	} else {
		log.Print(styles.SprintfS("warn", "[HTTP] TMDB_API_KEY no configurada; sin enriquecimiento de metadata"))
	}

	api := r.Group("/api")

	// Recomendaciones
	recSvc := recommend.NewService(deps.Catalog, deps.Engine, deps.Emotion, enricher, recommend.Options{
		Recommendations: cfg.Recommendations,
		MinRating:       cfg.MinRating,
		SearchThreshold: cfg.SearchThreshold,
		DetailThreshold: cfg.DetailThreshold,
		Weights:         cfg.Weights,
	})
	recommend.NewHandler(recSvc).RegisterRoutes(api)

	// Auth solo con MongoDB disponible
	var tokenManager auth.TokenManager
	if mongoClient != nil {
		usersColl := plattform.GetCollection(mongoClient, cfg.MongoDB, "users")
		secret := cfg.JWTSecret
		if secret == "" {
			secret = "default-secret-key"
		}
		tokenManager = auth.NewJWTTokenManager(secret)
		authSvc := auth.NewService(auth.NewMongoRepository(usersColl), tokenManager)
		auth.NewHandler(authSvc).RegisterRoutes(api.Group("/auth"))
	} else {
		log.Print(styles.SprintfS("warn", "[HTTP] MongoDB no disponible; endpoints de auth deshabilitados"))
	}

	// Health abierto; monitoreo protegido cuando hay auth
	root := r.Group("/")
	health.NewHandler(health.NewService(deps.Catalog, mongoClient, redisClient)).RegisterRoutes(root)

	monHandler := monitoring.NewHandler(monitoring.NewService(mongoClient))
	if tokenManager != nil {
		monHandler.RegisterRoutes(r.Group("/", auth.AuthMiddleware(tokenManager)))
	} else {
		monHandler.RegisterRoutes(root)
	}

	return r
}

func connectMongoWithRetry(ctx context.Context, uri string) *mongo.Client {
	interval := mongoRetryInterval()
	maxRetries := mongoMaxRetries()
	attempt := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("[HTTP] Context cancelado antes de conectar a MongoDB: %v", ctx.Err())
			return nil
		default:
		}

		attempt++
		client, err := plattform.NewClient(ctx, uri)
		if err == nil {
			if attempt > 1 {
				log.Printf("[HTTP] Conexión a MongoDB exitosa tras %d intentos", attempt)
			}
			return client
		}

		log.Printf("[HTTP] Error conectando a MongoDB (intento %d): %v", attempt, err)
		if maxRetries > 0 && attempt >= maxRetries {
			log.Printf("[HTTP] Alcanzado el máximo de intentos (%d) sin éxito", maxRetries)
			return nil
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			log.Printf("[HTTP] Context cancelado mientras se esperaba para reintentar: %v", ctx.Err())
			return nil
		}
	}
}

func mongoRetryInterval() time.Duration {
	val := strings.TrimSpace(os.Getenv("MONGO_RETRY_INTERVAL"))
	if val == "" {
		return defaultMongoRetryInterval
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs <= 0 {
		return defaultMongoRetryInterval
	}
	return time.Duration(secs) * time.Second
}

func mongoMaxRetries() int {
	val := strings.TrimSpace(os.Getenv("MONGO_MAX_RETRIES"))
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
