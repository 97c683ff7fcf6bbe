package client

import (
	"context"
	"strconv"

	"solar_cleaner/internal/models"
)

type replaceScheduleResponse struct {
	Success         bool                   `json:"success"`
	UpdatedSchedule []models.ScheduleEntry `json:"updatedSchedule"`
}

type addScheduleResponse struct {
	Success         bool                 `json:"success"`
	NewScheduleItem models.ScheduleEntry `json:"newScheduleItem"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Schedule fetches the cleaning schedule.
func (c *Client) Schedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	var out []models.ScheduleEntry
	resp, err := c.request(ctx).SetResult(&out).Get("/api/schedule")
	if err := check("get schedule", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceSchedule sends the whole schedule and returns success and the stored list.
func (c *Client) ReplaceSchedule(ctx context.Context, entries []models.ScheduleEntry) (bool, []models.ScheduleEntry, error) {
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	var out replaceScheduleResponse
	resp, err := c.request(ctx).SetBody(entries).SetResult(&out).Put("/api/schedule")
	if err := check("replace schedule", resp, err); err != nil {
		return false, nil, err
	}
	return out.Success, out.UpdatedSchedule, nil
}

// DeleteScheduleItem removes the entry at index.
func (c *Client) DeleteScheduleItem(ctx context.Context, index int) (bool, error) {
	var out successResponse
	resp, err := c.request(ctx).SetResult(&out).Delete("/api/schedule/" + strconv.Itoa(index))
	if err := check("delete schedule item", resp, err); err != nil {
		return false, err
	}
	return out.Success, nil
}

// AddScheduleItem appends an entry and returns success and the stored entry.
func (c *Client) AddScheduleItem(ctx context.Context, e models.ScheduleEntry) (bool, models.ScheduleEntry, error) {
	var out addScheduleResponse
	resp, err := c.request(ctx).SetBody(e).SetResult(&out).Post("/api/schedule")
	if err := check("add schedule item", resp, err); err != nil {
		return false, models.ScheduleEntry{}, err
	}
	return out.Success, out.NewScheduleItem, nil
}
