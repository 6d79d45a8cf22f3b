package models

import "time"

// GaugeView is one dial of the monitoring card.
type GaugeView struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Max     float64 `json:"max"`
	Angle   float64 `json:"angle"`    // degrees, 0..180
	NeedleX float64 `json:"needle_x"` // needle tip in the 200x100 dial viewBox
	NeedleY float64 `json:"needle_y"`
	Text    string  `json:"text"` // e.g. "37°C"
}

// Sample is one point of the temperature history chart.
type Sample struct {
	Seq         int       `json:"seq"`
	TakenAt     time.Time `json:"taken_at"`
	BlanketAvgC float64   `json:"blanket_avg_c"`
	BodyC       float64   `json:"body_c"`
}
