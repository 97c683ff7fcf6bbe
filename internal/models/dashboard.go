package models

import "time"

// HistorySize is how many on/off points the dashboard keeps.
const HistorySize = 5

// HistoryPoint is one entry of the on/off history strip.
type HistoryPoint struct {
	State bool      `json:"state"`
	Time  time.Time `json:"time"`
}

// Dashboard is the device status snapshot served to the control panel.
type Dashboard struct {
	IsCleanerOn      bool           `json:"isCleanerOn"`
	IsActive         bool           `json:"isActive"`
	OnOffHistory     []HistoryPoint `json:"onOffHistory"`
	LastCleaningTime string         `json:"lastCleaningTime"`
	ImagesCaptured   int            `json:"imagesCaptured"`
}
