package service

import "time"

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "BLOWER_CHANGE", "SETPOINT_CHANGE", "POWER_ON", "POWER_OFF", "ERROR"
}

// DeviceCommand is what the device would receive after a panel change.
type DeviceCommand struct {
	PowerOn   bool
	BlowerPct float64
	SetpointC float64
}
