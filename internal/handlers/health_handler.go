package handlers

import (
	"net/http"
	"time"

	"controle_frete/internal/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const serviceName = "Controle de Frete API"
const serviceVersion = "2.2.0"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root is the public status route.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health reports store connectivity. Public, used by uptime probes.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	db := "connected"
	if err := database.Ping(h.db); err != nil {
		status = "unhealthy"
		db = "disconnected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  db,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
	})
}
