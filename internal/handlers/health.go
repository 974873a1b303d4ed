package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "sessions": h.sessions.Len()})
}
