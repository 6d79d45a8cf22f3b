package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"blanket_warmer/internal/chart"
	"blanket_warmer/internal/view"

	"github.com/gin-gonic/gin"
)

const (
	chartURL = "/chart.svg"

	errRenderPage  = "failed to render dashboard"
	errRenderChart = "failed to render chart"
)

// page starts a fresh panel for every load; nothing carries over from an
// earlier visit.
func (h *Handler) page(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := h.services.Panels.Create(ctx)
	if err != nil {
		h.pageError(c, "panel_create_failed", err)
		return
	}
	gauges, err := h.services.Readings.Current(ctx)
	if err != nil {
		h.services.Panels.Drop(ctx, st.ID)
		h.pageError(c, "readings_current_failed", err)
		return
	}

	if missing := h.view.MissingIcons(st.Blower, st.Setpoint); len(missing) > 0 && h.log != nil {
		h.log.Warnw("slider_icon_missing", "icons", missing, "panel_id", st.ID)
	}

	var buf bytes.Buffer
	err = h.view.Render(&buf, view.Page{
		Title:    h.opts.Title,
		Panel:    st,
		Gauges:   gauges,
		ChartURL: chartURL,
		Live:     true,
	})
	if err != nil {
		h.services.Panels.Drop(ctx, st.ID)
		h.pageError(c, "page_render_failed", err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) pageError(c *gin.Context, logKey string, err error) {
	if h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.String(http.StatusInternalServerError, errRenderPage)
}

// @Summary      Temperature chart
// @Description  Blanket average and body temperature history as SVG.
// @Tags         readings
// @Produce      image/svg+xml
// @Success      200
// @Success      204  "fewer than two samples recorded"
// @Failure      500  {object}  map[string]string
// @Router       /chart.svg [get]
func (h *Handler) chartSVG(c *gin.Context) {
	samples, err := h.services.Readings.History(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadHistory, "chart_history_failed", err)
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderSVG(&buf, samples, chart.DefaultOptions()); err != nil {
		if errors.Is(err, chart.ErrNotEnoughSamples) {
			c.Status(http.StatusNoContent)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRenderChart, "chart_render_failed", err, "samples", len(samples))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}
