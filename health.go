package gotenberg

import (
	"context"
	"encoding/json"
	"fmt"
)

// HealthStatus is the up/down state reported by the health endpoint.
type HealthStatus string

// Health states.
const (
	HealthUp   HealthStatus = "up"
	HealthDown HealthStatus = "down"
)

// Health is the overall server health, with per-engine details.
type Health struct {
	Status  HealthStatus  `json:"status"`
	Details HealthDetails `json:"details"`
}

// HealthDetails reports each rendering engine separately.
type HealthDetails struct {
	Chromium    ModuleHealth `json:"chromium"`
	LibreOffice ModuleHealth `json:"libreoffice"`
}

// ModuleHealth is the state of a single rendering engine.
type ModuleHealth struct {
	Status HealthStatus `json:"status"`

	// Timestamp of the last probe, ISO 8601.
	Timestamp string `json:"timestamp"`

	// Error message when the status is down.
	Error string `json:"error,omitempty"`
}

// Health probes the server's health endpoint. The server answers with a
// body in both the up and the degraded case, so the response is parsed
// regardless of status.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, _, err := c.get(ctx, "health")
	if err != nil {
		return nil, err
	}
	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("parsing health response: %w", err)
	}
	return &h, nil
}
