package nav

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aikya/companion/internal/search"
	"github.com/aikya/companion/internal/session"
	"github.com/aikya/companion/internal/viewrouter"
)

func TestHandleView(t *testing.T) {
	store := session.NewStore(nil, search.Options{})
	sess, _ := store.Get("")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/nav/view?panel=search", nil)
	req = req.WithContext(session.NewContext(req.Context(), sess))
	recorder := httptest.NewRecorder()

	HandleView(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, `<style id="view-state" hx-swap-oob="true">#dashboard-view{display:none}#search-view{display:block}</style>`) {
		t.Fatalf("expected view-state swap, got: %s", body)
	}
	if !strings.Contains(body, `class="nav-btn active" aria-current="page" hx-post="/api/v1/nav/view?panel=search"`) {
		t.Fatalf("expected active search button, got: %s", body)
	}
	if sess.Router.Active() != viewrouter.PanelSearch {
		t.Fatalf("active = %s", sess.Router.Active())
	}
}

func TestHandleViewRejectsBadRequests(t *testing.T) {
	store := session.NewStore(nil, search.Options{})
	sess, _ := store.Get("")

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "unknown_panel", method: http.MethodPost, target: "/api/v1/nav/view?panel=reports", want: http.StatusBadRequest},
		{name: "get", method: http.MethodGet, target: "/api/v1/nav/view?panel=search", want: http.StatusMethodNotAllowed},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.target, nil)
			req = req.WithContext(session.NewContext(req.Context(), sess))
			recorder := httptest.NewRecorder()
			HandleView(recorder, req)
			if recorder.Code != test.want {
				t.Fatalf("status = %d, want %d", recorder.Code, test.want)
			}
		})
	}
	if sess.Router.Active() != viewrouter.PanelDashboard {
		t.Fatal("rejected requests must not change the panel")
	}
}
