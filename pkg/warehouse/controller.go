package warehouse

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/portsight/vendor-intel/internal/models"
)

// LifecycleClient issues requests against the warehouse control API.
type LifecycleClient interface {
	StateGetter
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Controller drives the warehouse lifecycle. It does not retry and does not
// wait for readiness; retry policy belongs to its callers (the connection
// manager's backoff, or the schedule that triggered the request).
type Controller struct {
	client LifecycleClient
	cache  *StateCache
}

func NewController(client LifecycleClient, cache *StateCache) *Controller {
	return &Controller{client: client, cache: cache}
}

// EnsureRunning is a no-op when the warehouse is already running. Otherwise
// it issues a start request and invalidates the state cache so the next
// check re-polls. A failed status check is treated as "assume not running":
// the start is still attempted.
func (c *Controller) EnsureRunning(ctx context.Context) error {
	running, err := c.cache.IsRunning(ctx)
	if err != nil {
		zap.S().Named("warehouse_controller").Warnw("status check failed, assuming not running", "error", err)
	}
	if running {
		return nil
	}

	if err := c.client.Start(ctx); err != nil {
		zap.S().Named("warehouse_controller").Errorw("failed to start warehouse", "error", err)
		return err
	}

	c.cache.Invalidate()
	zap.S().Named("warehouse_controller").Info("warehouse is starting")
	return nil
}

// Stop issues a stop request and invalidates the cache. Used by the external
// schedule only, never by the query path.
func (c *Controller) Stop(ctx context.Context) error {
	if err := c.client.Stop(ctx); err != nil {
		return err
	}

	c.cache.Invalidate()
	zap.S().Named("warehouse_controller").Info("warehouse is stopping")
	return nil
}

// State polls the control API directly, bypassing the cache. Used by the
// status endpoint where a fresh observation is worth the extra call.
func (c *Controller) State(ctx context.Context) (models.WarehouseStatus, error) {
	state, err := c.client.GetState(ctx)
	if err != nil {
		return models.WarehouseStatus{State: models.WarehouseStateUnknown}, err
	}
	return models.WarehouseStatus{State: state, ObservedAt: time.Now()}, nil
}
