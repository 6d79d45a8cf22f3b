package handlers

import (
	"net/http"
	"strings"

	"blanket_warmer/internal/models"

	"github.com/gin-gonic/gin"
)

const ctxPanel = "panel"

// panelMiddleware resolves the :id path parameter to a live panel and stores
// its snapshot in the Gin context.
func (h *Handler) panelMiddleware(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": errPanelNotFound,
		})
		return
	}

	st, err := h.services.Panels.Get(c.Request.Context(), id)
	if err != nil {
		h.panelError(c, "panel_lookup_failed", err, "panel_id", id)
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(ctxPanel, st)
	c.Next()
}

func panelFromContext(c *gin.Context) (models.PanelState, bool) {
	v, ok := c.Get(ctxPanel)
	if !ok {
		return models.PanelState{}, false
	}
	st, ok := v.(models.PanelState)
	return st, ok
}
