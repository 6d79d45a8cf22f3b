package service

import (
	"context"
	"math"
	"sync"
	"time"

	"blanket_warmer/internal/models"
	"blanket_warmer/internal/repository"
)

// ----------- Simulation constants -----------
const (
	AmbientC            = 25.0 // room temperature °C
	BodyC               = 36.0 // resting body temperature °C
	StartBlanketC       = 30.0
	HeaterMaxC          = 60.0 // element cut-off, also the gauge full scale
	MaxSafeHeaterC      = 55.0 // overheat threshold °C
	HeaterOverheadC     = 10.0 // heater runs this far above the blanket setpoint
	HeaterRampCPerSec   = 0.5
	HeaterCoolCPerSec   = 0.2
	BlanketGainPerSec   = 0.02  // share of the gap to setpoint closed per second at full blower
	BlanketLossPerSec   = 0.005 // share of the gap to ambient lost per second when off
	BodyCouplingFactor  = 0.05  // how much the blanket pulls body temperature
	BodyMaxDeviationC   = 0.5
	minBlowerEfficiency = 0.25 // heat transfer with the blower at 0 %
)

// Gauge keys fed by the simulator.
const (
	GaugeBlanketAvg = "blanket_avg"
	GaugeHeater     = "heater"
	GaugeBody       = "body"
)

type thermalState struct {
	cmd        DeviceCommand
	heaterC    float64
	blanketC   float64
	bodyC      float64
	overheat   bool
	updatedAt  time.Time
	lastSample time.Time
}

// ThermalSimulator stands in for the blanket hardware: it follows the last
// command from any panel and records chart samples.
type ThermalSimulator struct {
	sampleRepo  repository.SampleRepo
	eventRepo   repository.EventRepo
	sampleEvery time.Duration

	mu sync.Mutex
	st thermalState
}

// NewThermalSimulator returns a simulator starting from room temperature.
func NewThermalSimulator(sampleRepo repository.SampleRepo, eventRepo repository.EventRepo, initial DeviceCommand, sampleEvery time.Duration) *ThermalSimulator {
	return &ThermalSimulator{
		sampleRepo:  sampleRepo,
		eventRepo:   eventRepo,
		sampleEvery: sampleEvery,
		st: thermalState{
			cmd:      initial,
			heaterC:  AmbientC,
			blanketC: StartBlanketC,
			bodyC:    BodyC,
		},
	}
}

// Apply takes the latest panel command; the last writer wins.
func (s *ThermalSimulator) Apply(cmd DeviceCommand) {
	s.mu.Lock()
	s.st.cmd = cmd
	s.mu.Unlock()
}

// Temperatures reports current values rounded to 0.1 °C.
func (s *ThermalSimulator) Temperatures() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]float64{
		GaugeBlanketAvg: round1(s.st.blanketC),
		GaugeHeater:     round1(s.st.heaterC),
		GaugeBody:       round1(s.st.bodyC),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *ThermalSimulator) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now.UTC())
		}
	}
}

// step advances the model to now, then persists what the tick produced.
func (s *ThermalSimulator) step(ctx context.Context, now time.Time) {
	s.mu.Lock()
	if s.st.updatedAt.IsZero() {
		s.st.updatedAt = now
		s.st.lastSample = now
		s.mu.Unlock()
		return
	}
	elapsed := now.Sub(s.st.updatedAt).Seconds()
	if elapsed <= 0 {
		s.mu.Unlock()
		return
	}
	advance(&s.st, elapsed)
	s.st.updatedAt = now

	alert := s.detectOverheat(now)

	var sample *models.Sample
	if s.sampleEvery > 0 && now.Sub(s.st.lastSample) >= s.sampleEvery {
		s.st.lastSample = now
		sample = &models.Sample{TakenAt: now, BlanketAvgC: round1(s.st.blanketC), BodyC: round1(s.st.bodyC)}
	}
	s.mu.Unlock()

	if alert != nil && s.eventRepo != nil {
		_ = s.eventRepo.Append(ctx, *alert)
	}
	if sample != nil && s.sampleRepo != nil {
		_ = s.sampleRepo.Append(ctx, *sample)
	}
}

// advance integrates the model over elapsed seconds.
func advance(st *thermalState, elapsed float64) {
	if st.cmd.PowerOn {
		target := math.Min(st.cmd.SetpointC+HeaterOverheadC, HeaterMaxC)
		st.heaterC = approachLinear(st.heaterC, target, HeaterRampCPerSec*elapsed)

		efficiency := minBlowerEfficiency + (1-minBlowerEfficiency)*st.cmd.BlowerPct/100
		// the blanket can only be warmed up to what the heater delivers
		blanketTarget := math.Min(st.cmd.SetpointC, st.heaterC)
		if blanketTarget > st.blanketC {
			st.blanketC = approachExp(st.blanketC, blanketTarget, BlanketGainPerSec*efficiency*elapsed)
		} else {
			st.blanketC = approachExp(st.blanketC, blanketTarget, BlanketLossPerSec*elapsed)
		}
	} else {
		st.heaterC = approachLinear(st.heaterC, AmbientC, HeaterCoolCPerSec*elapsed)
		st.blanketC = approachExp(st.blanketC, AmbientC, BlanketLossPerSec*elapsed)
	}

	dev := (st.blanketC - BodyC) * BodyCouplingFactor
	st.bodyC = BodyC + math.Max(-BodyMaxDeviationC, math.Min(BodyMaxDeviationC, dev))
}

// detectOverheat latches the overheat flag and returns an ERROR event on the
// rising edge only. Callers hold s.mu.
func (s *ThermalSimulator) detectOverheat(now time.Time) *models.ControlEvent {
	if s.st.heaterC <= MaxSafeHeaterC {
		s.st.overheat = false
		return nil
	}
	if s.st.overheat {
		return nil
	}
	s.st.overheat = true
	return &models.ControlEvent{
		OccurredAt:  now,
		Type:        EventError,
		Description: "Heater overheat detected",
		Metadata: map[string]any{
			"heater_c":  round1(s.st.heaterC),
			"max_safe":  MaxSafeHeaterC,
			"setpoint":  s.st.cmd.SetpointC,
			"power_on":  s.st.cmd.PowerOn,
			"blower_pc": s.st.cmd.BlowerPct,
		},
	}
}

// approachLinear moves from toward to by at most step.
func approachLinear(from, to, step float64) float64 {
	if from < to {
		return math.Min(from+step, to)
	}
	return math.Max(from-step, to)
}

// approachExp closes the share k (capped at 1) of the gap between from and to.
func approachExp(from, to, k float64) float64 {
	if k > 1 {
		k = 1
	}
	return from + (to-from)*k
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
