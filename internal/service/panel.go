package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"blanket_warmer/internal/config"
	"blanket_warmer/internal/models"
	"blanket_warmer/internal/repository"
	"blanket_warmer/internal/widget"

	"github.com/google/uuid"
)

// Slider names as used in routes and websocket messages.
const (
	SliderBlower   = "blower"
	SliderSetpoint = "setpoint"
)

// panelIdleTTL bounds how long a page that never closed its socket is kept.
const panelIdleTTL = 30 * time.Minute

var (
	ErrPanelNotFound = errors.New("panel not found")
	ErrUnknownSlider = errors.New("unknown slider")
)

// DeviceSink receives the control values after every panel change.
type DeviceSink interface {
	Apply(cmd DeviceCommand)
}

// panel is the state one page load owns. Sliders never hold it; they are
// rebuilt around it and report back through OnChange.
type panel struct {
	mu        sync.Mutex
	id        string
	blower    float64
	setpoint  float64
	powerOn   bool
	createdAt time.Time
	updatedAt time.Time
}

type PanelService struct {
	blower   widget.SliderConfig
	setpoint widget.SliderConfig

	initialBlower   float64
	initialSetpoint float64
	initialPower    bool

	eventRepo repository.EventRepo
	sink      DeviceSink
	now       func() time.Time

	mu     sync.Mutex
	panels map[string]*panel
}

// NewPanelService validates both slider layouts up front so a broken range
// fails at startup instead of on the first render.
func NewPanelService(cfg config.DashboardConfig, eventRepo repository.EventRepo, sink DeviceSink) (*PanelService, error) {
	blowerCfg := sliderConfig(SliderBlower, cfg.Blower)
	blowerCfg.LabelFunc = widget.BlowerSpeedLabel
	setpointCfg := sliderConfig(SliderSetpoint, cfg.Setpoint)

	blower, err := widget.NewGradientSlider(blowerCfg, cfg.Blower.Initial)
	if err != nil {
		return nil, fmt.Errorf("blower slider: %w", err)
	}
	setpoint, err := widget.NewGradientSlider(setpointCfg, cfg.Setpoint.Initial)
	if err != nil {
		return nil, fmt.Errorf("setpoint slider: %w", err)
	}

	return &PanelService{
		blower:          blower.SliderConfig,
		setpoint:        setpoint.SliderConfig,
		initialBlower:   blower.Value(),
		initialSetpoint: setpoint.Value(),
		initialPower:    cfg.PowerOn,
		eventRepo:       eventRepo,
		sink:            sink,
		now:             func() time.Time { return time.Now().UTC() },
		panels:          make(map[string]*panel),
	}, nil
}

func sliderConfig(name string, c config.SliderConfig) widget.SliderConfig {
	return widget.SliderConfig{
		Name:     name,
		Icon:     c.Icon,
		Gradient: c.Gradient,
		Min:      c.Min,
		Max:      c.Max,
		Step:     c.Step,
		Unit:     c.Unit,
	}
}

// InitialCommand is the device command matching a freshly loaded page.
func (s *PanelService) InitialCommand() DeviceCommand {
	return DeviceCommand{PowerOn: s.initialPower, BlowerPct: s.initialBlower, SetpointC: s.initialSetpoint}
}

// Create starts a fresh page state from the configured initial values.
func (s *PanelService) Create(ctx context.Context) (models.PanelState, error) {
	now := s.now()
	p := &panel{
		id:        uuid.NewString(),
		blower:    s.initialBlower,
		setpoint:  s.initialSetpoint,
		powerOn:   s.initialPower,
		createdAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	s.pruneLocked(now)
	s.panels[p.id] = p
	s.mu.Unlock()

	return s.stateOf(p), nil
}

func (s *PanelService) Get(ctx context.Context, id string) (models.PanelState, error) {
	p, err := s.lookup(id)
	if err != nil {
		return models.PanelState{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return s.stateOf(p), nil
}

// Input moves one slider of a panel. The value is clamped and snapped by the
// slider; only an actual change is logged and forwarded to the device.
func (s *PanelService) Input(ctx context.Context, id, name string, value float64) (models.PanelState, error) {
	p, err := s.lookup(id)
	if err != nil {
		return models.PanelState{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	slider, err := s.bind(p, name)
	if err != nil {
		return models.PanelState{}, err
	}
	prev := slider.Value()
	applied := slider.Set(value)
	p.updatedAt = s.now()

	if applied == prev {
		return s.stateOf(p), nil
	}

	s.notify(p)
	ev := models.ControlEvent{
		OccurredAt: p.updatedAt,
		PanelID:    p.id,
		Metadata:   map[string]any{"from": prev, "to": applied},
	}
	if name == SliderBlower {
		ev.Type = EventBlowerChange
		ev.Description = "Blower speed set to " + slider.Label()
	} else {
		ev.Type = EventSetpointChange
		ev.Description = "Blanket setpoint set to " + slider.Label()
	}
	return s.stateOf(p), s.record(ctx, ev)
}

// TogglePower flips the ON/OFF button of a panel.
func (s *PanelService) TogglePower(ctx context.Context, id string) (models.PanelState, error) {
	p, err := s.lookup(id)
	if err != nil {
		return models.PanelState{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.powerOn = !p.powerOn
	p.updatedAt = s.now()
	s.notify(p)

	ev := models.ControlEvent{OccurredAt: p.updatedAt, PanelID: p.id}
	if p.powerOn {
		ev.Type, ev.Description = EventPowerOn, "Blanket warmer switched ON"
	} else {
		ev.Type, ev.Description = EventPowerOff, "Blanket warmer switched OFF"
	}
	return s.stateOf(p), s.record(ctx, ev)
}

// Drop forgets a panel; reloading the page starts over from the defaults.
func (s *PanelService) Drop(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.panels, id)
	s.mu.Unlock()
}

func (s *PanelService) lookup(id string) (*panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.panels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	return p, nil
}

func (s *PanelService) pruneLocked(now time.Time) {
	for id, p := range s.panels {
		p.mu.Lock()
		idle := now.Sub(p.updatedAt)
		p.mu.Unlock()
		if idle > panelIdleTTL {
			delete(s.panels, id)
		}
	}
}

// bind builds the named slider around the panel's value, wiring OnChange
// back into the panel. Callers hold p.mu.
func (s *PanelService) bind(p *panel, name string) (*widget.GradientSlider, error) {
	var (
		cfg   widget.SliderConfig
		value float64
		set   func(float64)
	)
	switch name {
	case SliderBlower:
		cfg, value, set = s.blower, p.blower, func(v float64) { p.blower = v }
	case SliderSetpoint:
		cfg, value, set = s.setpoint, p.setpoint, func(v float64) { p.setpoint = v }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlider, name)
	}
	slider, err := widget.NewGradientSlider(cfg, value)
	if err != nil {
		return nil, err
	}
	slider.OnChange = set
	return slider, nil
}

func (s *PanelService) notify(p *panel) {
	if s.sink == nil {
		return
	}
	s.sink.Apply(DeviceCommand{PowerOn: p.powerOn, BlowerPct: p.blower, SetpointC: p.setpoint})
}

func (s *PanelService) record(ctx context.Context, ev models.ControlEvent) error {
	if s.eventRepo == nil {
		return nil
	}
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		return fmt.Errorf("record %s event: %w", ev.Type, err)
	}
	return nil
}

// stateOf renders both sliders and the status line. Callers hold p.mu.
func (s *PanelService) stateOf(p *panel) models.PanelState {
	blower, _ := s.bind(p, SliderBlower)
	setpoint, _ := s.bind(p, SliderSetpoint)
	return models.PanelState{
		ID:       p.id,
		PowerOn:  p.powerOn,
		Blower:   sliderView(blower),
		Setpoint: sliderView(setpoint),
		Status: fmt.Sprintf("%s SPEED, BLANKET SETPOINT %s%s",
			widget.BlowerSpeedStatus(blower.Value()), widget.FormatValue(setpoint.Value()), s.setpoint.Unit),
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

func sliderView(s *widget.GradientSlider) models.SliderView {
	return models.SliderView{
		Name:    s.Name,
		Value:   s.Value(),
		Min:     s.Min,
		Max:     s.Max,
		Step:    s.Step,
		Percent: s.Percent(),
		Label:   s.Label(),
		Track:   s.TrackBackground(),
		Icon:    s.Icon,
	}
}
