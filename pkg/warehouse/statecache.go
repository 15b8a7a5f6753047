package warehouse

import (
	"context"
	"sync"
	"time"

	"github.com/portsight/vendor-intel/internal/models"
)

// StateGetter reports the warehouse run-state.
type StateGetter interface {
	GetState(ctx context.Context) (models.WarehouseState, error)
}

// StateCache caches the warehouse run-state under a short TTL so the query
// path does not hammer the status endpoint. Staleness within the TTL is
// tolerated by design; Invalidate forces a re-poll after any state-changing
// action.
type StateCache struct {
	client StateGetter
	ttl    time.Duration

	mu         sync.Mutex
	running    bool
	observedAt time.Time
}

func NewStateCache(client StateGetter, ttl time.Duration) *StateCache {
	return &StateCache{client: client, ttl: ttl}
}

// IsRunning returns whether the warehouse was RUNNING at the last observation
// within the TTL, polling the status endpoint when the cache is cold or
// expired. A failed poll returns a StatusCheckError and leaves the cache
// empty.
func (c *StateCache) IsRunning(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.observedAt.IsZero() && time.Since(c.observedAt) < c.ttl {
		return c.running, nil
	}

	state, err := c.client.GetState(ctx)
	if err != nil {
		return false, err
	}

	c.running = state == models.WarehouseStateRunning
	c.observedAt = time.Now()
	return c.running, nil
}

// Invalidate clears the cached observation so the next IsRunning re-polls.
func (c *StateCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observedAt = time.Time{}
	c.running = false
}
