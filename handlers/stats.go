package handlers

import (
	"net/http"

	"energy-calculator/services"
	"energy-calculator/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	sessions *usecases.SessionUseCase
	janitor  *services.SessionJanitor
}

func NewStatsHandler(sessions *usecases.SessionUseCase, janitor *services.SessionJanitor) *StatsHandler {
	return &StatsHandler{
		sessions: sessions,
		janitor:  janitor,
	}
}

// PurgeExpired handles POST /api/v1/sessions/purge
func (h *StatsHandler) PurgeExpired(c *gin.Context) {
	removed := h.janitor.PurgeExpired(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "processed", "removed": removed})
}

// GetSessionStats handles GET /api/v1/sessions/stats
func (h *StatsHandler) GetSessionStats(c *gin.Context) {
	stats, err := h.sessions.Stats(c.Request.Context())
	if err != nil {
		zap.L().Error("reading session stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  stats,
	})
}
