package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monster-arena/internal/config"
)

// @Summary Get combat configuration
// @Description Returns the combat tunables the server was started with.
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func GetConfigHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"combat": cfg.Combat})
	}
}
