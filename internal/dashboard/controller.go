// Package dashboard owns the current today/tomorrow snapshot and the status
// shown while refreshing it.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/backend"
	"github.com/aikya/companion/internal/models"
	"github.com/aikya/companion/internal/status"
)

// Source provides dashboard snapshots.
type Source interface {
	Configured() bool
	Dashboard(ctx context.Context) (models.DashboardSnapshot, error)
}

// Controller refreshes the snapshot. It is safe for concurrent use; a
// refresh result is applied only when no newer refresh has already landed.
type Controller struct {
	source Source
	now    func() time.Time

	mu          sync.Mutex
	snapshot    *models.DashboardSnapshot
	status      status.Status
	settled     status.Status
	refreshedAt time.Time
	current     bool // false once the latest applied refresh failed
	issued      uint64
	applied     uint64
}

func NewController(source Source) *Controller {
	return &Controller{
		source: source,
		now:    time.Now,
	}
}

// Refresh performs a single fetch of the snapshot. Failures are reflected in
// the status, never returned.
func (c *Controller) Refresh(ctx context.Context) {
	c.refresh(ctx)
}

// FreshSnapshot refreshes and returns the snapshot only when the backend
// answered with one. A failed refresh reports false even if an older
// snapshot is still held.
func (c *Controller) FreshSnapshot(ctx context.Context) (models.DashboardSnapshot, bool) {
	if !c.refresh(ctx) {
		return models.DashboardSnapshot{}, false
	}
	return c.Snapshot()
}

// refresh reports whether the held snapshot is current once it returns: either
// this fetch succeeded or a newer one that already landed did.
func (c *Controller) refresh(ctx context.Context) bool {
	logger := log.Ctx(ctx)

	if c.source == nil || !c.source.Configured() {
		logger.Debug().Msg("Dashboard refresh skipped: backend not configured")
		return false
	}

	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.status = status.Updating
	c.mu.Unlock()

	snapshot, err := c.source.Dashboard(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		logger.Debug().Uint64("seq", seq).Uint64("applied", c.applied).Msg("Discarding stale dashboard response")
		return c.current
	}
	c.applied = seq
	c.current = err == nil

	switch {
	case err == nil:
		c.snapshot = &snapshot
		c.refreshedAt = c.now()
		c.settled = status.UpdatedNow
	case errors.Is(err, backend.ErrUnsuccessful):
		logger.Warn().Msg("Booking backend returned no dashboard data")
	default:
		logger.Error().Err(err).Msg("Failed to refresh dashboard")
		c.settled = status.ServerError
	}
	c.status = c.settled
	return c.current
}

// Snapshot returns a copy of the current snapshot, if any.
func (c *Controller) Snapshot() (models.DashboardSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return models.DashboardSnapshot{}, false
	}
	return *c.snapshot, true
}

// State returns the inputs of the dashboard view.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		Configured:  c.source != nil && c.source.Configured(),
		Status:      c.status,
		RefreshedAt: c.refreshedAt,
	}
	if c.snapshot != nil {
		snapshot := *c.snapshot
		state.Snapshot = &snapshot
	}
	return state
}

func (c *Controller) View() View {
	return BuildView(c.State())
}
