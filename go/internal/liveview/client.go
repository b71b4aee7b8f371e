package liveview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/openrally/courtside/go/internal/models"
)

// APIError is a structured rejection from the server. Code mirrors the
// store's error taxonomy so callers can branch without string matching.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	IDs        []uuid.UUID `json:"ids,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// IsVersionConflict reports whether the server rejected the mutation
// because the supplied version was stale. The caller should refetch and
// retry with fresh versions.
func (e *APIError) IsVersionConflict() bool {
	return e.Code == "version_conflict"
}

// Client talks to a courtside server over its REST surface.
type Client struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(responseBody, apiErr) != nil || apiErr.Code == "" {
			apiErr.Code = "unknown"
			apiErr.Message = string(responseBody)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// FetchSnapshot retrieves the tournament's full current snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, tournamentID uuid.UUID) (*models.Snapshot, error) {
	var snap models.Snapshot
	endpoint := fmt.Sprintf("/api/tournaments/%s/snapshot", tournamentID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ReorderQueue submits a reorder batch. A stale version anywhere in the
// batch yields an APIError with code version_conflict and the stale ids.
func (c *Client) ReorderQueue(ctx context.Context, tournamentID uuid.UUID, items []live.ReorderItem) error {
	endpoint := fmt.Sprintf("/api/tournaments/%s/queue/reorder", tournamentID)
	return c.do(ctx, http.MethodPost, endpoint, items, nil)
}

// ApplyQueueAction submits a single queue mutation (MARK_READY, PULL or
// SEND_TO_COURT).
func (c *Client) ApplyQueueAction(ctx context.Context, tournamentID uuid.UUID, req live.QueueActionRequest) error {
	endpoint := fmt.Sprintf("/api/tournaments/%s/queue/action", tournamentID)
	return c.do(ctx, http.MethodPut, endpoint, req, nil)
}

type scoreRequest struct {
	Game    models.Game `json:"game"`
	Version int64       `json:"version"`
}

// RecordScore reports a game score against a specific match version.
func (c *Client) RecordScore(ctx context.Context, tournamentID, matchID uuid.UUID, game models.Game, version int64) error {
	endpoint := fmt.Sprintf("/api/tournaments/%s/matches/%s/score", tournamentID, matchID)
	return c.do(ctx, http.MethodPut, endpoint, scoreRequest{Game: game, Version: version}, nil)
}

type versionRequest struct {
	Version int64 `json:"version"`
}

// CancelMatch terminates a match.
func (c *Client) CancelMatch(ctx context.Context, tournamentID, matchID uuid.UUID, version int64) error {
	endpoint := fmt.Sprintf("/api/tournaments/%s/matches/%s/cancel", tournamentID, matchID)
	return c.do(ctx, http.MethodPut, endpoint, versionRequest{Version: version}, nil)
}

// ClearCourt returns a cleaning or held court to idle.
func (c *Client) ClearCourt(ctx context.Context, tournamentID, courtID uuid.UUID, version int64) error {
	endpoint := fmt.Sprintf("/api/tournaments/%s/courts/%s/clear", tournamentID, courtID)
	return c.do(ctx, http.MethodPut, endpoint, versionRequest{Version: version}, nil)
}

// RaiseAlert creates a tournament alert.
func (c *Client) RaiseAlert(ctx context.Context, tournamentID uuid.UUID, req live.RaiseAlertRequest) error {
	endpoint := fmt.Sprintf("/api/tournaments/%s/alerts", tournamentID)
	return c.do(ctx, http.MethodPost, endpoint, req, nil)
}

// DismissAlert removes a dismissible alert.
func (c *Client) DismissAlert(ctx context.Context, tournamentID, alertID uuid.UUID, version int64) error {
	endpoint := fmt.Sprintf("/api/tournaments/%s/alerts/%s?version=%d", tournamentID, alertID, version)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}
