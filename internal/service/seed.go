package service

import (
	"context"

	"solar_cleaner/internal/models"
)

// demoBatches mirror the placeholder output of the first detection runs.
var demoBatches = []models.Batch{
	{
		ID: "1", Name: "Batch 2023-05-01", Date: "2023-05-01", DamageCount: 5,
		Images: []models.BatchImage{
			{ID: "1a", URL: "https://example.com/batch1-image1.jpg", DamageCount: 2},
			{ID: "1b", URL: "https://example.com/batch1-image2.jpg", DamageCount: 3},
		},
	},
	{
		ID: "2", Name: "Batch 2023-05-02", Date: "2023-05-02", DamageCount: 3,
		Images: []models.BatchImage{
			{ID: "2a", URL: "https://example.com/batch2-image1.jpg", DamageCount: 3},
		},
	},
	{
		ID: "3", Name: "Batch 2023-05-03", Date: "2023-05-03", DamageCount: 7,
		Images: []models.BatchImage{
			{ID: "3a", URL: "https://example.com/batch3-image1.jpg", DamageCount: 2},
			{ID: "3b", URL: "https://example.com/batch3-image2.jpg", DamageCount: 3},
			{ID: "3c", URL: "https://example.com/batch3-image3.jpg", DamageCount: 2},
		},
	},
	{
		ID: "4", Name: "Batch 2023-05-04", Date: "2023-05-04", DamageCount: 2,
		Images: []models.BatchImage{{ID: "4a", URL: "https://example.com/placeholder4.jpg", DamageCount: 2}},
	},
	{
		ID: "5", Name: "Batch 2023-05-05", Date: "2023-05-05", DamageCount: 4,
		Images: []models.BatchImage{{ID: "5a", URL: "https://example.com/placeholder5.jpg", DamageCount: 4}},
	},
}

// SeedDemo inserts the demo batches when no batch exists yet and reports how
// many were inserted.
func (s *BatchService) SeedDemo(ctx context.Context) (int, error) {
	n, err := s.batchRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i, b := range demoBatches {
		if err := s.batchRepo.Insert(ctx, b); err != nil {
			return i, err
		}
	}
	return len(demoBatches), nil
}
