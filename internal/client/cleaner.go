package client

import (
	"context"

	"solar_cleaner/internal/models"
)

type toggleResponse struct {
	Success  bool `json:"success"`
	NewState bool `json:"newState"`
}

type activeResponse struct {
	Success        bool `json:"success"`
	NewActiveState bool `json:"newActiveState"`
}

// Dashboard fetches the control panel snapshot.
func (c *Client) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var d models.Dashboard
	resp, err := c.request(ctx).SetResult(&d).Get("/api/dashboard")
	if err := check("get dashboard", resp, err); err != nil {
		return models.Dashboard{}, err
	}
	return d, nil
}

// ToggleCleaner asks for power state on and reports success and the new state.
func (c *Client) ToggleCleaner(ctx context.Context, on bool) (bool, bool, error) {
	var out toggleResponse
	resp, err := c.request(ctx).
		SetBody(map[string]bool{"state": on}).
		SetResult(&out).
		Post("/api/cleaner/toggle")
	if err := check("toggle cleaner", resp, err); err != nil {
		return false, false, err
	}
	return out.Success, out.NewState, nil
}

// SetActive arms or disarms the cleaner and reports success and the new flag.
func (c *Client) SetActive(ctx context.Context, active bool) (bool, bool, error) {
	var out activeResponse
	resp, err := c.request(ctx).
		SetBody(map[string]bool{"active": active}).
		SetResult(&out).
		Post("/api/cleaner/active")
	if err := check("set active", resp, err); err != nil {
		return false, false, err
	}
	return out.Success, out.NewActiveState, nil
}

// Events lists the event log; zero times and empty type mean no filter.
func (c *Client) Events(ctx context.Context, from, to, typ string) ([]models.CleanerEvent, error) {
	var out struct {
		Count  int                   `json:"count"`
		Events []models.CleanerEvent `json:"events"`
	}
	req := c.request(ctx).SetResult(&out)
	for k, v := range map[string]string{"from": from, "to": to, "type": typ} {
		if v != "" {
			req.SetQueryParam(k, v)
		}
	}
	resp, err := req.Get("/api/events")
	if err := check("list events", resp, err); err != nil {
		return nil, err
	}
	return out.Events, nil
}
