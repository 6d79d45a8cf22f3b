package widget

import (
	"errors"
	"fmt"
	"math"
)

// Default bounds of a range control when none are configured.
const (
	DefaultMin  = 0.0
	DefaultMax  = 100.0
	DefaultStep = 1.0

	trackRestColor = "#fff"
)

var (
	ErrEmptyRange  = errors.New("slider range is empty: max must be greater than min")
	ErrInvalidStep = errors.New("slider step must be positive")
)

// SliderConfig describes a gradient slider independent of its current value.
// A zero Min and Max mean the default 0..100 range; a zero Step means 1.
type SliderConfig struct {
	Name      string
	Icon      string // thumb image path
	Gradient  string // CSS color list filling the left side of the track, e.g. "orange, red"
	Min       float64
	Max       float64
	Step      float64
	Unit      string
	LabelFunc func(v float64) string
}

// GradientSlider is a labeled range control whose filled track color and
// label derive from its value. The owner of the value receives changes
// through OnChange; the slider never keeps state the owner does not see.
type GradientSlider struct {
	SliderConfig
	OnChange func(v float64)

	value float64
}

// NewGradientSlider validates cfg and returns a slider holding value clamped
// into the configured bounds.
func NewGradientSlider(cfg SliderConfig, value float64) (*GradientSlider, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	s := &GradientSlider{SliderConfig: cfg}
	s.value = s.constrain(value)
	return s, nil
}

func normalizeConfig(cfg SliderConfig) (SliderConfig, error) {
	if cfg.Min == 0 && cfg.Max == 0 {
		cfg.Min, cfg.Max = DefaultMin, DefaultMax
	}
	if cfg.Step == 0 {
		cfg.Step = DefaultStep
	}
	if math.IsNaN(cfg.Min) || math.IsNaN(cfg.Max) || cfg.Max <= cfg.Min {
		return cfg, fmt.Errorf("%s [%v, %v]: %w", cfg.Name, cfg.Min, cfg.Max, ErrEmptyRange)
	}
	if cfg.Step < 0 || math.IsNaN(cfg.Step) {
		return cfg, fmt.Errorf("%s step %v: %w", cfg.Name, cfg.Step, ErrInvalidStep)
	}
	return cfg, nil
}

// Value returns the current control position.
func (s *GradientSlider) Value() float64 { return s.value }

// Set moves the control the way a native range input does: the input is
// clamped into [Min, Max] and snapped to the nearest step. The applied value
// is raised through OnChange and returned. NaN input leaves the slider as is.
func (s *GradientSlider) Set(v float64) float64 {
	if math.IsNaN(v) {
		return s.value
	}
	s.value = s.constrain(v)
	if s.OnChange != nil {
		s.OnChange(s.value)
	}
	return s.value
}

func (s *GradientSlider) constrain(v float64) float64 {
	v = clamp(v, s.Min, s.Max)
	if s.Step <= 0 {
		return v
	}
	snapped := s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	// keep float noise from leaking into labels (36 + 0.1*3 and friends)
	snapped = math.Round(snapped*1e9) / 1e9
	if snapped-s.Max > s.Step*1e-9 {
		snapped = math.Round((snapped-s.Step)*1e9) / 1e9
	}
	return math.Min(snapped, s.Max)
}

// Percent is how far the control is filled, in [0, 100].
func (s *GradientSlider) Percent() float64 {
	return Percent(s.value, s.Min, s.Max)
}

// TrackBackground is the CSS background of the track: the caller gradient up
// to the current position, white past it.
func (s *GradientSlider) TrackBackground() string {
	return TrackBackground(s.Gradient, s.Percent())
}

// Label is the text shown above the control.
func (s *GradientSlider) Label() string {
	if s.LabelFunc != nil {
		return s.LabelFunc(s.value)
	}
	return FormatValue(s.value) + s.Unit
}

// Percent maps value onto [0, 100] relative to [min, max]. An empty or
// inverted range yields 0 (an empty track) instead of NaN or ±Inf.
func Percent(value, min, max float64) float64 {
	span := max - min
	if span <= 0 || math.IsNaN(span) {
		return 0
	}
	return (value - min) / span * 100
}

// TrackBackground builds a two-stop linear gradient with a hard edge at percent.
func TrackBackground(gradient string, percent float64) string {
	p := FormatValue(percent) + "%"
	return fmt.Sprintf("linear-gradient(to right, %s %s, %s %s)", gradient, p, trackRestColor, p)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
