package handler

import (
	"net/http"

	"bilim-chat/internal/transport/httpdto"
	"bilim-chat/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health pings the database.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		_ = c.Error(err)
		msg := err.Error()
		if gin.Mode() == gin.ReleaseMode {
			msg = internalErrorMessage
		}
		c.JSON(http.StatusInternalServerError, httpdto.HealthResponse{OK: false, Error: msg})
		return
	}
	c.JSON(http.StatusOK, httpdto.HealthResponse{OK: true})
}
