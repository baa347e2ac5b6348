package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aikya/companion/internal/backend"
	"github.com/aikya/companion/internal/models"
	"github.com/aikya/companion/internal/status"
)

type fakeSource struct {
	mu         sync.Mutex
	configured bool
	calls      int
	responses  []fakeResponse
}

type fakeResponse struct {
	snapshot models.DashboardSnapshot
	err      error
	release  chan struct{}
}

func (f *fakeSource) Configured() bool {
	return f.configured
}

func (f *fakeSource) Dashboard(ctx context.Context) (models.DashboardSnapshot, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	resp := f.responses[idx]
	f.mu.Unlock()

	if resp.release != nil {
		<-resp.release
	}
	return resp.snapshot, resp.err
}

func sampleSnapshot(day string) models.DashboardSnapshot {
	return models.DashboardSnapshot{
		Today: models.DaySummary{
			Date:    "2024-03-05",
			Day:     day,
			Summary: models.DayCounts{Checkins: 2, Checkouts: 1, Occupied: 7},
			Checkins: []models.BookingStub{
				{GuestName: "Ana Silva", Property: "Villa Mar"},
				{GuestName: "Ben Okafor", Property: "Loft 2"},
			},
			Checkouts: []models.BookingStub{{GuestName: "Chen Wu", Property: "Cabin"}},
		},
		Tomorrow: models.DaySummary{
			Date:    "2024-03-06",
			Day:     "Wednesday",
			Summary: models.DayCounts{Checkins: 0, Checkouts: 3, Occupied: 5},
		},
	}
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	source := &fakeSource{configured: true, responses: []fakeResponse{{snapshot: sampleSnapshot("Tuesday")}}}
	controller := NewController(source)

	controller.Refresh(context.Background())

	snapshot, ok := controller.Snapshot()
	if !ok {
		t.Fatal("expected snapshot after successful refresh")
	}
	if snapshot.Today.Day != "Tuesday" {
		t.Fatalf("unexpected snapshot: %+v", snapshot.Today)
	}
	if got := controller.State().Status; got != status.UpdatedNow {
		t.Fatalf("status = %+v, want %+v", got, status.UpdatedNow)
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	source := &fakeSource{configured: true, responses: []fakeResponse{
		{snapshot: sampleSnapshot("Tuesday")},
		{err: fmt.Errorf("fetch dashboard: %w", errors.New("connection refused"))},
	}}
	controller := NewController(source)

	controller.Refresh(context.Background())
	controller.Refresh(context.Background())

	snapshot, ok := controller.Snapshot()
	if !ok || snapshot.Today.Day != "Tuesday" {
		t.Fatalf("expected previous snapshot to survive, got %+v (ok=%t)", snapshot, ok)
	}
	if got := controller.State().Status; got != status.ServerError {
		t.Fatalf("status = %+v, want %+v", got, status.ServerError)
	}
}

func TestFreshSnapshotIgnoresHeldSnapshotAfterFailure(t *testing.T) {
	source := &fakeSource{configured: true, responses: []fakeResponse{
		{snapshot: sampleSnapshot("Tuesday")},
		{err: errors.New("connection refused")},
		{err: backend.ErrUnsuccessful},
		{snapshot: sampleSnapshot("Thursday")},
	}}
	controller := NewController(source)

	if snapshot, ok := controller.FreshSnapshot(context.Background()); !ok || snapshot.Today.Day != "Tuesday" {
		t.Fatalf("first refresh: got %+v (ok=%t)", snapshot.Today, ok)
	}
	if _, ok := controller.FreshSnapshot(context.Background()); ok {
		t.Fatal("failed refresh reported a fresh snapshot")
	}
	if _, ok := controller.FreshSnapshot(context.Background()); ok {
		t.Fatal("unsuccessful refresh reported a fresh snapshot")
	}
	if _, ok := controller.Snapshot(); !ok {
		t.Fatal("held snapshot should survive failed refreshes")
	}
	if snapshot, ok := controller.FreshSnapshot(context.Background()); !ok || snapshot.Today.Day != "Thursday" {
		t.Fatalf("recovered refresh: got %+v (ok=%t)", snapshot.Today, ok)
	}
}

func TestFreshSnapshotUnconfigured(t *testing.T) {
	controller := NewController(&fakeSource{})
	if _, ok := controller.FreshSnapshot(context.Background()); ok {
		t.Fatal("unconfigured backend reported a fresh snapshot")
	}
}

func TestRefreshUnsuccessfulTreatedAsNoData(t *testing.T) {
	source := &fakeSource{configured: true, responses: []fakeResponse{
		{snapshot: sampleSnapshot("Tuesday")},
		{err: backend.ErrUnsuccessful},
	}}
	controller := NewController(source)

	controller.Refresh(context.Background())
	controller.Refresh(context.Background())

	if snapshot, _ := controller.Snapshot(); snapshot.Today.Day != "Tuesday" {
		t.Fatalf("snapshot changed after unsuccessful response: %+v", snapshot)
	}
	if got := controller.State().Status; got != status.UpdatedNow {
		t.Fatalf("status = %+v, want prior status %+v", got, status.UpdatedNow)
	}
}

func TestRefreshWithoutBackendIsNoop(t *testing.T) {
	source := &fakeSource{configured: false}
	controller := NewController(source)

	controller.Refresh(context.Background())

	if source.calls != 0 {
		t.Fatalf("expected no backend calls, got %d", source.calls)
	}
	if _, ok := controller.Snapshot(); ok {
		t.Fatal("expected no snapshot")
	}
}

func TestStaleRefreshDoesNotOverwriteNewer(t *testing.T) {
	slow := make(chan struct{})
	source := &fakeSource{configured: true, responses: []fakeResponse{
		{snapshot: sampleSnapshot("Old"), release: slow},
		{snapshot: sampleSnapshot("New")},
	}}
	controller := NewController(source)

	done := make(chan struct{})
	go func() {
		controller.Refresh(context.Background())
		close(done)
	}()

	// Wait until the first refresh is in flight before issuing the second.
	for {
		source.mu.Lock()
		calls := source.calls
		source.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	controller.Refresh(context.Background())
	close(slow)
	<-done

	snapshot, _ := controller.Snapshot()
	if snapshot.Today.Day != "New" {
		t.Fatalf("stale response overwrote newer snapshot: %q", snapshot.Today.Day)
	}
}
