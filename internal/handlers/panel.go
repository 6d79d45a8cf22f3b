package handlers

import (
	"errors"
	"net/http"

	"blanket_warmer/internal/models"
	"blanket_warmer/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errPanelNotFound   = "panel not found"
	errUnknownSlider   = "unknown slider"
	errPanelUpdate     = "failed to update panel"
	errInvalidBodyPref = "invalid body: "
)

// sliderRequest is the body of a slider move; value is required.
type sliderRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// SetSliderRequest is an exported model for Swagger docs of the setSlider payload.
type SetSliderRequest struct {
	// New slider value; clamped to the slider range and snapped to its step
	Value float64 `json:"value" example:"70"`
}

// SliderResponse is the re-rendered slider plus the panel it belongs to.
type SliderResponse struct {
	Slider models.SliderView `json:"slider"`
	Status string            `json:"status"`
	Panel  models.PanelState `json:"panel"`
}

// panelError maps service errors onto status codes. Lookup failures are the
// caller's fault and not logged as errors.
func (h *Handler) panelError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrPanelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errPanelNotFound})
	case errors.Is(err, service.ErrUnknownSlider):
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownSlider})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errPanelUpdate, logKey, err, kv...)
	}
}

// applied reports whether a panel change went through. A change that was
// applied but could not be written to the event log is only logged.
func (h *Handler) applied(st models.PanelState, err error, logKey string) bool {
	if err == nil {
		return true
	}
	if st.ID == "" {
		return false
	}
	if h.log != nil {
		h.log.Warnw(logKey, "err", err, "panel_id", st.ID)
	}
	return true
}

// @Summary      Get panel
// @Description  Snapshot of one page load: both sliders, power and status line.
// @Tags         panels
// @Produce      json
// @Param        id   path      string  true  "Panel id"
// @Success      200  {object}  models.PanelState
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/panels/{id} [get]
func (h *Handler) getPanel(c *gin.Context) {
	st, ok := panelFromContext(c)
	if !ok {
		h.panelError(c, "panel_get_failed", service.ErrPanelNotFound)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Move slider
// @Description  Sets blower or setpoint. Out-of-range values are clamped.
// @Tags         panels
// @Accept       json
// @Produce      json
// @Param        id    path   string            true  "Panel id"
// @Param        name  path   string            true  "Slider name"  Enums(blower,setpoint)
// @Param        body  body   SetSliderRequest  true  "Slider payload"
// @Success      200   {object}  SliderResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/panels/{id}/sliders/{name} [post]
func (h *Handler) setSlider(c *gin.Context) {
	var req sliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	id, name := c.Param("id"), c.Param("name")
	st, err := h.services.Panels.Input(c.Request.Context(), id, name, *req.Value)
	if !h.applied(st, err, "slider_event_record_failed") {
		h.panelError(c, "panel_input_failed", err, "panel_id", id, "slider", name)
		return
	}

	slider := st.Blower
	if name == service.SliderSetpoint {
		slider = st.Setpoint
	}
	c.JSON(http.StatusOK, SliderResponse{Slider: slider, Status: st.Status, Panel: st})
}

// @Summary      Toggle power
// @Tags         panels
// @Produce      json
// @Param        id   path      string  true  "Panel id"
// @Success      200  {object}  models.PanelState
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/panels/{id}/power [post]
func (h *Handler) togglePower(c *gin.Context) {
	id := c.Param("id")
	st, err := h.services.Panels.TogglePower(c.Request.Context(), id)
	if !h.applied(st, err, "power_event_record_failed") {
		h.panelError(c, "panel_toggle_failed", err, "panel_id", id)
		return
	}
	c.JSON(http.StatusOK, st)
}
