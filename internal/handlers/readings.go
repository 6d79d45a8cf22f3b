package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errLoadReadings = "failed to load readings"
	errLoadHistory  = "failed to load temperature history"
)

// @Summary      Current readings
// @Description  Gauge values with needle angle (0..180) and needle tip in the 200x100 dial.
// @Tags         readings
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, gauges"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/readings [get]
func (h *Handler) getReadings(c *gin.Context) {
	gauges, err := h.services.Readings.Current(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadReadings, "readings_current_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(gauges),
		"gauges": gauges,
	})
}

// @Summary      Temperature history
// @Description  Chart samples, oldest first.
// @Tags         readings
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, samples"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/readings/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	samples, err := h.services.Readings.History(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadHistory, "readings_history_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(samples),
		"samples": samples,
	})
}
