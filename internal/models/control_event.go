package models

import "time"

// ControlEvent records one user action on a panel or a simulator alert.
type ControlEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // BLOWER_CHANGE | SETPOINT_CHANGE | POWER_ON | POWER_OFF | ERROR
	PanelID     string    `json:"panel_id,omitempty"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
