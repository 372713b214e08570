// Package mission is a read-only HTTP client for the mission service. The
// user service pulls attempt summaries from it when assembling dashboard and
// passport views; it is the only outward call this service makes.
package mission

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Attempt statuses this service cares about.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// AttemptSummary is the mission service's per-attempt view of a user.
type AttemptSummary struct {
	AttemptID       string `json:"attemptId"`
	MissionID       string `json:"missionId"`
	MissionTitle    string `json:"missionTitle"`
	Status          string `json:"status"`
	ProgressPercent int    `json:"progressPercent"`
	StartedAt       string `json:"startedAt,omitempty"`
	CompletedAt     string `json:"completedAt,omitempty"`
}

// Client fetches attempt summaries over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a mission client. In Kubernetes the base URL is the
// service name, e.g. http://mission-service.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Attempts lists a user's mission attempts, optionally filtered by status.
func (c *Client) Attempts(ctx context.Context, userID, status string) ([]AttemptSummary, error) {
	q := url.Values{"userId": {userID}}
	if status != "" {
		q.Set("status", status)
	}
	endpoint := fmt.Sprintf("%s/api/missions/attempts?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mission service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mission service returned status %d", resp.StatusCode)
	}

	var attempts []AttemptSummary
	if err := json.NewDecoder(resp.Body).Decode(&attempts); err != nil {
		return nil, fmt.Errorf("decode mission response: %w", err)
	}
	return attempts, nil
}
