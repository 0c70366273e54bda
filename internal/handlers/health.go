package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billyziiii/docker-fullstack/internal/database"
)

type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC(),
	})
}

// Index lists the available endpoints, mirroring the behaviour of the API
// root route.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API running",
		"version": "1.0.0",
		"endpoints": []string{
			"/api/health",
			"/api/auth/register",
			"/api/auth/login",
			"/api/user/profile",
			"/api/game/slot",
			"/api/game/history",
			"/api/game/live",
		},
	})
}
