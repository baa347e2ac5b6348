package nav

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aikya/companion/internal/viewrouter"
)

func TestNavMarksActivePanel(t *testing.T) {
	out := buildNavHTML(viewrouter.BuildView(viewrouter.PanelSearch), false)

	if strings.Contains(out, "hx-swap-oob") {
		t.Fatalf("in-page nav must not be an out-of-band swap: %s", out)
	}
	if !strings.Contains(out, `class="nav-btn active" aria-current="page" hx-post="/api/v1/nav/view?panel=search"`) {
		t.Fatalf("search button not marked active: %s", out)
	}
	if strings.Contains(out, `class="nav-btn active" aria-current="page" hx-post="/api/v1/nav/view?panel=dashboard"`) {
		t.Fatalf("dashboard button marked active: %s", out)
	}
}

func TestViewStateHidesInactivePanel(t *testing.T) {
	out := buildViewStateHTML(viewrouter.BuildView(viewrouter.PanelDashboard), false)
	want := `<style id="view-state">#dashboard-view{display:block}#search-view{display:none}</style>`
	if out != want {
		t.Fatalf("got %s, want %s", out, want)
	}
}

func TestSwitchRendersBothSwaps(t *testing.T) {
	var buf bytes.Buffer
	if err := Switch(viewrouter.BuildView(viewrouter.PanelSearch)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<style id="view-state" hx-swap-oob="true">`) {
		t.Errorf("missing view-state swap: %s", out)
	}
	if !strings.Contains(out, `<nav id="main-nav" class="main-nav" hx-swap-oob="true">`) {
		t.Errorf("missing nav swap: %s", out)
	}
	if !strings.Contains(out, `#search-view{display:block}`) {
		t.Errorf("search panel not shown: %s", out)
	}
}
