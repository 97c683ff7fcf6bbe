package models

// BatchPageSize is the number of batches returned per page.
const BatchPageSize = 5

// Batch is a group of captured images processed together for damage detection.
type Batch struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Date        string       `json:"date"` // YYYY-MM-DD
	DamageCount int          `json:"damageCount"`
	Images      []BatchImage `json:"images"`
}

// BatchImage is one captured image and the damages detected on it.
type BatchImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	DamageCount int    `json:"damageCount"`
}

// BatchPage is one page of a batch listing.
type BatchPage struct {
	Batches    []Batch `json:"batches"`
	TotalCount int     `json:"totalCount"`
}
