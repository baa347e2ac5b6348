package nav

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/aikya/companion/internal/viewrouter"
)

// Nav renders the panel switcher. With oob set it replaces the existing nav
// as an out-of-band swap.
func Nav(view viewrouter.View, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildNavHTML(view, oob))
		return err
	})
}

// ViewState renders the style block that shows the active panel and hides
// the other.
func ViewState(view viewrouter.View, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildViewStateHTML(view, oob))
		return err
	})
}

// Switch renders both out-of-band swaps for a panel change.
func Switch(view viewrouter.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildViewStateHTML(view, true)+buildNavHTML(view, true))
		return err
	})
}

func buildNavHTML(view viewrouter.View, oob bool) string {
	var builder strings.Builder
	builder.WriteString(`<nav id="main-nav" class="main-nav"`)
	if oob {
		builder.WriteString(` hx-swap-oob="true"`)
	}
	builder.WriteString(`>`)
	builder.WriteString(navButton(viewrouter.PanelDashboard, "Dashboard", view.Active))
	builder.WriteString(navButton(viewrouter.PanelSearch, "Search", view.Active))
	builder.WriteString(`</nav>`)
	return builder.String()
}

func navButton(panel viewrouter.Panel, label string, active viewrouter.Panel) string {
	class := "nav-btn"
	current := ""
	if panel == active {
		class += " active"
		current = ` aria-current="page"`
	}
	return fmt.Sprintf(
		`<button type="button" class="%s"%s hx-post="/api/v1/nav/view?panel=%s" hx-swap="none">%s</button>`,
		class, current, panel, label,
	)
}

func buildViewStateHTML(view viewrouter.View, oob bool) string {
	attr := ""
	if oob {
		attr = ` hx-swap-oob="true"`
	}
	return fmt.Sprintf(
		`<style id="view-state"%s>#dashboard-view{display:%s}#search-view{display:%s}</style>`,
		attr, displayValue(view.DashboardVisible), displayValue(view.SearchVisible),
	)
}

func displayValue(visible bool) string {
	if visible {
		return "block"
	}
	return "none"
}
