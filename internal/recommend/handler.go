package recommend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moodflix/internal/emotion"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registra los endpoints de recomendación bajo el grupo dado.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/search", h.Search)
	g.POST("/emotion", h.Emotion)
	g.GET("/emotions", h.Emotions)
	g.GET("/movie/:id", h.MovieDetail)
}

type searchRequest struct {
	Title string `json:"title" binding:"required"`
	TopN  int    `json:"top_n"`
}

func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido"})
		return
	}

	resp, err := h.svc.SearchRecommendations(c.Request.Context(), req.Title, req.TopN)
	if err != nil {
		if errors.Is(err, ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "película no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error al calcular recomendaciones"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

type emotionRequest struct {
	Emotion   string  `json:"emotion" binding:"required"`
	TopN      int     `json:"top_n"`
	MinRating float64 `json:"min_rating"`
}

func (h *Handler) Emotion(c *gin.Context) {
	var req emotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido"})
		return
	}

	resp, err := h.svc.EmotionRecommendations(c.Request.Context(), req.Emotion, req.TopN, req.MinRating)
	if err != nil {
		if errors.Is(err, emotion.ErrNoMapping) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "emoción no reconocida"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error al calcular recomendaciones"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Emotions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"emotions": h.svc.Emotions()})
}

func (h *Handler) MovieDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	resp, err := h.svc.MovieDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "película no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error al obtener el detalle"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
