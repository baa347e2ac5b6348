package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/aikya/companion/internal/models"
	"github.com/aikya/companion/internal/worker"
)

const DigestTitle = "Daily digest"

var ErrNoSnapshot = errors.New("no fresh dashboard snapshot available")

// DigestPayload summarizes today's arrivals and departures.
func DigestPayload(snapshot models.DashboardSnapshot) worker.Payload {
	return worker.Payload{
		Title: DigestTitle,
		Body: fmt.Sprintf("Today: %d arrivals, %d departures",
			snapshot.Today.Summary.Checkins,
			snapshot.Today.Summary.Checkouts),
	}
}

// Dashboard is refreshed before the digest is built. FreshSnapshot reports
// false when the refresh did not produce a snapshot, even if an older one is
// held.
type Dashboard interface {
	FreshSnapshot(ctx context.Context) (models.DashboardSnapshot, bool)
}

// SendDigest refreshes the dashboard and broadcasts the digest built from
// the snapshot that refresh returned.
func (s *Sender) SendDigest(ctx context.Context, dashboard Dashboard) (Result, error) {
	if !s.Configured() {
		return Result{}, ErrNotConfigured
	}

	snapshot, ok := dashboard.FreshSnapshot(ctx)
	if !ok {
		return Result{}, ErrNoSnapshot
	}
	return s.Broadcast(ctx, DigestPayload(snapshot))
}
