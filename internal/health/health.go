// Package health expone el readiness del servicio: catálogo cargado,
// estadísticas del dataset y estado de las dependencias opcionales.
package health

import (
	"context"
	"net/http"
	"time"

	"moodflix/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Status struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Dataset   catalog.Stats          `json:"dataset"`
	Services  map[string]interface{} `json:"services"`
}

type Service interface {
	Check(ctx context.Context) Status
}

type healthService struct {
	cat         *catalog.Catalog
	mongoClient *mongo.Client
	redisClient *redis.Client
}

// NewService arma el chequeo. mongoClient y redisClient pueden ser nil
// cuando esa infraestructura no está configurada.
func NewService(cat *catalog.Catalog, mongoClient *mongo.Client, redisClient *redis.Client) Service {
	return &healthService{
		cat:         cat,
		mongoClient: mongoClient,
		redisClient: redisClient,
	}
}

func (s *healthService) Check(ctx context.Context) Status {
	services := make(map[string]interface{})
	overallStatus := "ok"

	// El catálogo es la única dependencia dura: sin películas no hay motor.
	catalogStatus := "ok"
	if s.cat.Len() == 0 {
		catalogStatus = "empty"
		overallStatus = "degraded"
	}
	services["catalog"] = map[string]string{"status": catalogStatus}

	if s.mongoClient != nil {
		mongoStatus := "ok"
		if err := s.mongoClient.Ping(ctx, nil); err != nil {
			mongoStatus = "down"
			overallStatus = "degraded"
		}
		services["mongodb"] = map[string]string{"status": mongoStatus}
	}

	if s.redisClient != nil {
		redisStatus := "ok"
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
			overallStatus = "degraded"
		}
		services["redis"] = map[string]string{"status": redisStatus}
	}

	return Status{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Dataset:   s.cat.Stats(),
		Services:  services,
	}
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/health", h.HealthCheck)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	status := h.svc.Check(c.Request.Context())
	httpStatus := http.StatusOK
	if status.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, status)
}
