package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/portsight/vendor-intel/internal/models"
	srvErrors "github.com/portsight/vendor-intel/pkg/errors"
)

// Client talks to the warehouse control API.
//
// GET  /api/2.0/sql/warehouses/{id}       -> {"state": "RUNNING" | ...}
// POST /api/2.0/sql/warehouses/{id}/start -> 2xx on accepted
// POST /api/2.0/sql/warehouses/{id}/stop  -> 2xx on accepted
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the given warehouse. A bare hostname gets
// the https scheme; an explicit scheme is kept as-is.
func NewClient(host, warehouseID, token string) *Client {
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return &Client{
		baseURL:    fmt.Sprintf("%s/api/2.0/sql/warehouses/%s", host, warehouseID),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type stateResponse struct {
	State string `json:"state"`
}

// GetState returns the warehouse run-state as reported by the control API.
func (c *Client) GetState(ctx context.Context) (models.WarehouseState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return models.WarehouseStateUnknown, srvErrors.NewStatusCheckError(err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WarehouseStateUnknown, srvErrors.NewStatusCheckError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.WarehouseStateUnknown, srvErrors.NewStatusCheckError(
			fmt.Errorf("status endpoint returned %d: %s", resp.StatusCode, string(body)))
	}

	var sr stateResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return models.WarehouseStateUnknown, srvErrors.NewStatusCheckError(err)
	}

	state := models.ParseWarehouseState(sr.State)
	zap.S().Named("warehouse_client").Debugw("warehouse state observed", "state", state)
	return state, nil
}

// Start issues a start request. The warehouse becomes queryable only after
// it leaves STARTING; callers discover readiness through their own connect
// attempts.
func (c *Client) Start(ctx context.Context) error {
	return c.post(ctx, "start")
}

// Stop issues a stop request.
func (c *Client) Stop(ctx context.Context) error {
	return c.post(ctx, "stop")
}

func (c *Client) post(ctx context.Context, action string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", c.baseURL, action), nil)
	if err != nil {
		return srvErrors.NewLifecycleTransportError(action, err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return srvErrors.NewLifecycleTransportError(action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return srvErrors.NewLifecycleRequestError(action, resp.StatusCode, string(body))
	}

	zap.S().Named("warehouse_client").Infow("warehouse lifecycle request accepted", "action", action)
	return nil
}
