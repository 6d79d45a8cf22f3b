package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"blanket_warmer/internal/config"
	"blanket_warmer/internal/models"
	"blanket_warmer/internal/service"
	"blanket_warmer/internal/view"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockPanels struct {
	state     models.PanelState
	createErr error
	getErr    error
	inputErr  error
	toggleErr error

	lastSlider string
	lastValue  float64
	dropped    []string
	dropCh     chan string // optional; receives dropped ids
}

func (m *mockPanels) Create(ctx context.Context) (models.PanelState, error) {
	if m.createErr != nil {
		return models.PanelState{}, m.createErr
	}
	return m.state, nil
}
func (m *mockPanels) Get(ctx context.Context, id string) (models.PanelState, error) {
	if m.getErr != nil {
		return models.PanelState{}, m.getErr
	}
	return m.state, nil
}
func (m *mockPanels) Input(ctx context.Context, id, slider string, value float64) (models.PanelState, error) {
	m.lastSlider, m.lastValue = slider, value
	if m.inputErr != nil {
		return models.PanelState{}, m.inputErr
	}
	return m.state, nil
}
func (m *mockPanels) TogglePower(ctx context.Context, id string) (models.PanelState, error) {
	if m.toggleErr != nil {
		return models.PanelState{}, m.toggleErr
	}
	m.state.PowerOn = !m.state.PowerOn
	return m.state, nil
}
func (m *mockPanels) Drop(ctx context.Context, id string) {
	if m.dropCh != nil {
		m.dropCh <- id
		return
	}
	m.dropped = append(m.dropped, id)
}

type mockReadings struct {
	gauges     []models.GaugeView
	samples    []models.Sample
	err        error
	historyErr error
}

func (m *mockReadings) Current(ctx context.Context) ([]models.GaugeView, error) {
	return m.gauges, m.err
}
func (m *mockReadings) History(ctx context.Context) ([]models.Sample, error) {
	return m.samples, m.historyErr
}

type mockEventLog struct {
	resp     []models.ControlEvent
	err      error
	lastType string
	lastFrom time.Time
	lastTo   time.Time
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ControlEvent, error) {
	m.lastType, m.lastFrom, m.lastTo = f.Type, f.From, f.To
	return m.resp, m.err
}

// ---- Helpers ----

var errBoom = errors.New("boom")

func testDashboard() config.DashboardConfig {
	return config.DashboardConfig{
		Title:   "Blanket warmer 01",
		PowerOn: true,
		Blower: config.SliderConfig{
			Icon: "/static/wind.svg", Gradient: "lightblue, dodgerblue",
			Min: 0, Max: 100, Step: 1, Initial: 50,
		},
		Setpoint: config.SliderConfig{
			Icon: "/static/fire.svg", Gradient: "orange, red",
			Min: 36, Max: 40, Step: 1, Unit: "°C", Initial: 50,
		},
	}
}

// realPanels is a PanelService without event log or device sink.
func realPanels(t *testing.T) *service.PanelService {
	t.Helper()
	p, err := service.NewPanelService(testDashboard(), nil, nil)
	if err != nil {
		t.Fatalf("NewPanelService: %v", err)
	}
	return p
}

func staticGauges() []models.GaugeView {
	return []models.GaugeView{
		{Key: "blanket_avg", Label: "Suhu Rata-Rata Selimut", Value: 37, Max: 60, Angle: 111, Text: "37°C"},
		{Key: "heater", Label: "Suhu Pemanas", Value: 50, Max: 60, Angle: 150, NeedleX: 30.72, NeedleY: 60, Text: "50°C"},
		{Key: "body", Label: "Suhu Tubuh", Value: 36, Max: 60, Angle: 108, Text: "36°C"},
	}
}

func newTestRouter(t *testing.T, s *service.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := view.New()
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	h := NewHandler(s, r, Options{Title: "Blanket warmer 01", ReadingsInterval: 20 * time.Millisecond}, nil)
	return h.InitRoutes()
}
