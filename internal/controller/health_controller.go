package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db        *gorm.DB
	startedAt time.Time
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{
		db:        db,
		startedAt: time.Now(),
	}
}

// Health godoc
// @Summary Service health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	status := http.StatusOK
	overall := "ok"
	dbStatus := "up"

	sqlDB, err := ctrl.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = http.StatusServiceUnavailable
		overall = "degraded"
		dbStatus = "down"
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"uptime":   time.Since(ctrl.startedAt).String(),
		"time":     time.Now().Format(time.RFC3339),
		"database": dbStatus,
	})
}
