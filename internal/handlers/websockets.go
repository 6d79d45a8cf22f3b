package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"blanket_warmer/internal/models"
	"blanket_warmer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 2 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
	replyBuffer      = 8
)

// Envelope types.
const (
	envPanel    = "panel"
	envReadings = "readings"
	envError    = "error"

	msgInput  = "input"
	msgToggle = "toggle"
)

const (
	errMissingPanel   = "missing 'panel' query parameter"
	errInvalidMessage = "invalid message"
	errMissingValue   = "input requires a numeric 'value'"
	errUnknownType    = "unknown message type"
)

// Envelope used for WebSocket messages sent by the server.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// wsMessage is what the page sends: {"type":"input","slider":"blower","value":70}
// or {"type":"toggle"}.
type wsMessage struct {
	Type   string   `json:"type"`
	Slider string   `json:"slider,omitempty"`
	Value  *float64 `json:"value,omitempty"`
}

// Upgrader for HTTP -> WebSocket. The page is served from the same origin.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect carries one page load's interaction. The panel lives as long as
// this socket; closing it (reload, tab closed) drops the panel.
func (h *Handler) wsConnect(c *gin.Context) {
	ctx := c.Request.Context()
	panelID := c.Query("panel")
	if panelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingPanel})
		return
	}
	st, err := h.services.Panels.Get(ctx, panelID)
	if err != nil {
		h.panelError(c, "ws_panel_lookup_failed", err, "panel_id", panelID)
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()
	defer h.services.Panels.Drop(context.Background(), panelID)

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine applies page events; this goroutine is the only writer.
	done := make(chan struct{})
	quit := make(chan struct{})
	replies := make(chan wsEnvelope, replyBuffer)
	defer close(quit)
	go h.startReader(ctx, conn, panelID, replies, done, quit)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// Send initial panel and readings immediately.
	if err := writeEnvelope(conn, wsEnvelope{Type: envPanel, Data: st}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err, "panel_id", panelID)
		}
		return
	}
	if err := h.sendReadings(ctx, conn); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case env := <-replies:
			if err := writeEnvelope(conn, env); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err, "panel_id", panelID)
				}
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendReadings(ctx, conn); err != nil {
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds, falling
// back to the configured readings interval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := h.opts.ReadingsInterval
	if interval <= 0 || interval > maxInterval {
		interval = defaultInterval
	}

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// startReader turns incoming page events into panel updates and hands the
// replies to the writer.
func (h *Handler) startReader(ctx context.Context, conn *websocket.Conn, panelID string, replies chan<- wsEnvelope, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err, "panel_id", panelID)
			}
			return
		}
		select {
		case replies <- h.handleMessage(ctx, panelID, raw):
		case <-quit:
			return
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, panelID string, raw []byte) wsEnvelope {
	var msg wsMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return wsEnvelope{Type: envError, Error: errInvalidMessage}
	}

	var (
		st  models.PanelState
		err error
	)
	switch msg.Type {
	case msgInput:
		if msg.Value == nil {
			return wsEnvelope{Type: envError, Error: errMissingValue}
		}
		st, err = h.services.Panels.Input(ctx, panelID, msg.Slider, *msg.Value)
	case msgToggle:
		st, err = h.services.Panels.TogglePower(ctx, panelID)
	default:
		return wsEnvelope{Type: envError, Error: errUnknownType}
	}

	if !h.applied(st, err, "ws_event_record_failed") {
		switch {
		case errors.Is(err, service.ErrUnknownSlider):
			return wsEnvelope{Type: envError, Error: errUnknownSlider}
		case errors.Is(err, service.ErrPanelNotFound):
			return wsEnvelope{Type: envError, Error: errPanelNotFound}
		}
		if h.log != nil {
			h.log.Errorw("ws_panel_update_failed", "err", err, "panel_id", panelID, "type", msg.Type)
		}
		return wsEnvelope{Type: envError, Error: errPanelUpdate}
	}
	return wsEnvelope{Type: envPanel, Data: st}
}

// sendReadings fetches and writes the current gauges with a write deadline.
func (h *Handler) sendReadings(ctx context.Context, conn *websocket.Conn) error {
	gauges, err := h.services.Readings.Current(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_get_readings_failed", "err", err)
		}
		return err
	}
	return writeEnvelope(conn, wsEnvelope{Type: envReadings, Data: gauges})
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
