package models

import "time"

// CleanerState is the persisted snapshot of the cleaning device.
type CleanerState struct {
	ID                int       `json:"id"`
	IsOn              bool      `json:"is_on"`
	IsActive          bool      `json:"is_active"`                     // armed for scheduled runs
	CleaningStartedAt time.Time `json:"cleaning_started_at,omitempty"` // zero while off
	LastCleanedAt     time.Time `json:"last_cleaned_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}
