package models

import "time"

// Event types written to the cleaner log.
const (
	EventPowerOn        = "POWER_ON"
	EventPowerOff       = "POWER_OFF"
	EventActivated      = "ACTIVATED"
	EventDeactivated    = "DEACTIVATED"
	EventScheduledStart = "SCHEDULED_START"
	EventAutoStop       = "AUTO_STOP"
)

// CleanerEvent is a single log entry.
type CleanerEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

// PowerState reports whether the event left the cleaner on, and whether the
// event changes power at all.
func (e CleanerEvent) PowerState() (on bool, ok bool) {
	switch e.Type {
	case EventPowerOn, EventScheduledStart:
		return true, true
	case EventPowerOff, EventAutoStop:
		return false, true
	}
	return false, false
}
