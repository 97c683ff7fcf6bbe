package service

import "time"

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "POWER_ON", "POWER_OFF", "ACTIVATED", ...
}

// BatchQuery selects one page of batches.
type BatchQuery struct {
	Page   int // 1-based
	Search string
}

// BatchInput is an ML pipeline upload.
type BatchInput struct {
	Name   string
	Date   string // YYYY-MM-DD; today when empty
	Images []ImageInput
}

// ImageInput is one analysed image of an upload.
type ImageInput struct {
	URL         string
	DamageCount int
}
