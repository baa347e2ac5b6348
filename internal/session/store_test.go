package session

import (
	"context"
	"testing"
	"time"

	"github.com/aikya/companion/internal/models"
	"github.com/aikya/companion/internal/search"
	"github.com/aikya/companion/internal/viewrouter"
)

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, guest string) ([]models.SearchResult, error) {
	return []models.SearchResult{{GuestName: guest, Property: "Villa"}}, nil
}

func TestGetReusesKnownSession(t *testing.T) {
	store := NewStore(stubSearcher{}, search.Options{})

	first, created := store.Get("")
	if !created {
		t.Fatal("expected a new session for an empty id")
	}
	again, created := store.Get(first.ID)
	if created || again != first {
		t.Fatal("expected the existing session")
	}

	other, created := store.Get("not-a-uuid")
	if !created || other == first {
		t.Fatal("expected a new session for a malformed id")
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	store := NewStore(stubSearcher{}, search.Options{})
	a, _ := store.Get("")
	b, _ := store.Get("")

	a.Router.Show(viewrouter.PanelSearch)
	if b.Router.Active() != viewrouter.PanelDashboard {
		t.Fatalf("session b active = %s, want dashboard", b.Router.Active())
	}
	if a.Search == b.Search {
		t.Fatal("sessions share a search controller")
	}
}

func TestSearchFireSwitchesToSearchPanel(t *testing.T) {
	fired := make(chan string, 1)
	store := NewStore(stubSearcher{}, search.Options{
		Debounce: time.Millisecond,
		OnFire:   func(query string) { fired <- query },
	})
	sess, _ := store.Get("")

	result, err := sess.Search.Submit(context.Background(), "Ana")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Kind != search.KindResults {
		t.Fatalf("kind = %v, want results", result.Kind)
	}
	if sess.Router.Active() != viewrouter.PanelSearch {
		t.Fatalf("active = %s, want search", sess.Router.Active())
	}
	if got := <-fired; got != "Ana" {
		t.Fatalf("OnFire query = %q", got)
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	store := NewStore(stubSearcher{}, search.Options{})
	store.now = func() time.Time { return now }

	stale, _ := store.Get("")
	now = now.Add(90 * time.Minute)
	fresh, _ := store.Get("")
	now = now.Add(30 * time.Minute)

	if removed := store.Sweep(time.Hour); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, created := store.Get(stale.ID); !created {
		t.Fatal("stale session survived sweep")
	}
	if got, created := store.Get(fresh.ID); created || got != fresh {
		t.Fatal("fresh session was swept")
	}
}
