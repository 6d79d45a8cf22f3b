package models

import "time"

// SliderView is a rendered gradient slider.
type SliderView struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
	Track   string  `json:"track"` // CSS background of the track
	Icon    string  `json:"icon,omitempty"`
}

// PanelState is the page-owned state of one dashboard load.
type PanelState struct {
	ID        string     `json:"id"`
	PowerOn   bool       `json:"power_on"`
	Blower    SliderView `json:"blower"`
	Setpoint  SliderView `json:"setpoint"`
	Status    string     `json:"status"` // e.g. "MEDIUM SPEED, BLANKET SETPOINT 40°C"
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
