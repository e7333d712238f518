package api

import (
	"context"
	"errors"
	"strings"

	"authentiq/internal/domain"
)

// History fetches the recent check history for the current token.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.getJSON(ctx, "/api/history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DashboardStats fetches the dashboard summary for the current token.
func (c *Client) DashboardStats(ctx context.Context) (*domain.StatsSummary, error) {
	var stats domain.StatsSummary
	if err := c.getJSON(ctx, "/api/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Contact submits a support form message.
func (c *Client) Contact(ctx context.Context, req ContactRequest) error {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return errors.New("email and message are required")
	}
	return c.postJSON(ctx, "/api/contact", req, nil)
}

// LogEvent reports a usage event. The response body is discarded; the
// telemetry worker decides what to do with failures.
func (c *Client) LogEvent(ctx context.Context, action string, details map[string]string) error {
	payload := map[string]any{
		"action":  action,
		"details": details,
	}
	return c.postJSON(ctx, "/api/log", payload, nil)
}
