package service

import (
	"context"
	"time"

	"blanket_warmer/internal/config"
	"blanket_warmer/internal/models"
	"blanket_warmer/internal/repository"
)

// Panels owns the page state of every open dashboard load.
type Panels interface {
	Create(ctx context.Context) (models.PanelState, error)
	Get(ctx context.Context, id string) (models.PanelState, error)
	Input(ctx context.Context, id, slider string, value float64) (models.PanelState, error)
	TogglePower(ctx context.Context, id string) (models.PanelState, error)
	Drop(ctx context.Context, id string)
}

// Readings is the current reading provider queried by the page.
type Readings interface {
	Current(ctx context.Context) ([]models.GaugeView, error)
	History(ctx context.Context) ([]models.Sample, error)
}

// EventLog exposes the control event log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error)
}

// Simulator runs the background loop producing readings.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services. Simulator is nil unless readings are
// simulated.
type Service struct {
	Panels
	Readings
	EventLog
	Simulator
}

// NewService wires the repository layer into concrete services. With the
// simulated reading source, panel input drives the thermal simulator and the
// gauges follow it; otherwise gauges show the configured static values.
func NewService(repos *repository.Repository, cfg *config.Config) (*Service, error) {
	panels, err := NewPanelService(cfg.Dashboard, repos.EventRepo, nil)
	if err != nil {
		return nil, err
	}

	var sim *ThermalSimulator
	if cfg.Readings.Source == config.SourceSimulated {
		sim = NewThermalSimulator(repos.SampleRepo, repos.EventRepo, panels.InitialCommand(), cfg.Readings.SampleEvery)
		panels.sink = sim
	}

	s := &Service{
		Panels:   panels,
		EventLog: NewEventLogService(repos.EventRepo),
	}
	if sim != nil {
		s.Readings = NewReadingService(cfg.Readings, repos.SampleRepo, sim)
		s.Simulator = sim
	} else {
		s.Readings = NewReadingService(cfg.Readings, repos.SampleRepo, nil)
	}
	return s, nil
}
