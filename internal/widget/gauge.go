package widget

import (
	"errors"
	"fmt"
	"math"
)

// Fixed dial geometry in a "0 0 200 100" viewBox.
const (
	GaugeViewBox  = "0 0 200 100"
	GaugeArcPath  = "M10 100 A90 90 0 0 1 190 100"
	GaugeCenterX  = 100.0
	GaugeCenterY  = 100.0
	NeedleLength  = 80.0
	FullScaleDeg  = 180.0
	DefaultGaugeU = "°C"
)

var ErrNonPositiveMax = errors.New("gauge max must be positive")

// GradientStop is one color stop of the dial track.
type GradientStop struct {
	Offset int // percent
	Color  string
}

// GaugeTrackStops are the same for every dial and do not follow the value.
var GaugeTrackStops = []GradientStop{
	{Offset: 0, Color: "green"},
	{Offset: 50, Color: "yellow"},
	{Offset: 100, Color: "red"},
}

// Point is an SVG coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gauge is a semicircular dial; it is a pure function of its inputs.
type Gauge struct {
	Label string
	Value float64
	Max   float64
	Unit  string
}

// NewGauge rejects a non-positive max.
func NewGauge(label string, value, max float64) (Gauge, error) {
	if !(max > 0) {
		return Gauge{}, fmt.Errorf("gauge %q max %v: %w", label, max, ErrNonPositiveMax)
	}
	return Gauge{Label: label, Value: value, Max: max, Unit: DefaultGaugeU}, nil
}

// Angle returns the needle angle in degrees.
func (g Gauge) Angle() float64 { return Angle(g.Value, g.Max) }

// Needle returns the needle tip.
func (g Gauge) Needle() Point { return Needle(g.Angle()) }

// Text is the reading printed under the dial.
func (g Gauge) Text() string {
	unit := g.Unit
	if unit == "" {
		unit = DefaultGaugeU
	}
	return FormatValue(g.Value) + unit
}

// Angle maps value/max onto [0, 180]. Readings at or above max pin the
// needle at full scale; negative readings rest it at 0. A non-positive max
// has no scale, so the needle rests at 0.
func Angle(value, max float64) float64 {
	if !(max > 0) || math.IsNaN(value) {
		return 0
	}
	a := value / max * FullScaleDeg
	return clamp(a, 0, FullScaleDeg)
}

// Needle projects angle onto the dial: 0° points left, 90° straight up and
// 180° right.
func Needle(angle float64) Point {
	rad := math.Pi * (FullScaleDeg - angle) / FullScaleDeg
	return Point{
		X: GaugeCenterX + NeedleLength*math.Cos(rad),
		Y: GaugeCenterY - NeedleLength*math.Sin(rad),
	}
}
