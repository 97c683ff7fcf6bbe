package client

import (
	"context"
	"net/url"
	"strconv"

	"solar_cleaner/internal/models"
)

// ListBatches fetches one page (1-based) of batches matching search.
func (c *Client) ListBatches(ctx context.Context, page int, search string) (models.BatchPage, error) {
	var out models.BatchPage
	req := c.request(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&out)
	if search != "" {
		req.SetQueryParam("search", search)
	}
	resp, err := req.Get("/api/batches")
	if err := check("list batches", resp, err); err != nil {
		return models.BatchPage{}, err
	}
	return out, nil
}

// GetBatch fetches one batch with its images.
func (c *Client) GetBatch(ctx context.Context, id string) (models.Batch, error) {
	var out models.Batch
	resp, err := c.request(ctx).SetResult(&out).Get("/api/batches/" + url.PathEscape(id))
	if err := check("get batch", resp, err); err != nil {
		return models.Batch{}, err
	}
	return out, nil
}

// BatchUpload is the body of an ingestion call.
type BatchUpload struct {
	Name   string        `json:"name,omitempty"`
	Date   string        `json:"date,omitempty"`
	Images []ImageUpload `json:"images"`
}

// ImageUpload is one analysed image.
type ImageUpload struct {
	URL         string `json:"url"`
	DamageCount int    `json:"damageCount"`
}

// IngestBatch uploads ML output and returns the stored batch.
func (c *Client) IngestBatch(ctx context.Context, in BatchUpload) (models.Batch, error) {
	var out models.Batch
	resp, err := c.request(ctx).SetBody(in).SetResult(&out).Post("/api/batches")
	if err := check("ingest batch", resp, err); err != nil {
		return models.Batch{}, err
	}
	return out, nil
}
