// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/api/apiutil"
	"github.com/aikya/companion/internal/api/htmx"
	"github.com/aikya/companion/internal/dashboard"
	"github.com/aikya/companion/internal/session"
	dashboardtempl "github.com/aikya/companion/internal/templates/components/dashboard"
	navtempl "github.com/aikya/companion/internal/templates/components/nav"
	searchtempl "github.com/aikya/companion/internal/templates/components/search"
	"github.com/aikya/companion/internal/templates/layouts"
	"github.com/aikya/companion/internal/viewrouter"
)

// RefreshedEvent is dispatched on the client after a refresh swap.
const RefreshedEvent = "dashboard-refreshed"

var (
	controller  *dashboard.Controller
	page        layouts.Page
	searchPanel searchtempl.Settings
	initOnce    sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(c *dashboard.Controller, p layouts.Page, s searchtempl.Settings) {
	if c == nil {
		log.Warn().Msg("InitHandlers called with nil controller; dashboard handlers will be unavailable")
		return
	}
	initOnce.Do(func() {
		controller = c
		page = p
		searchPanel = s
	})
}

// HandleIndex renders the full page for GET /.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	logger := log.Ctx(r.Context())
	if controller == nil {
		logger.Error().Msg("Dashboard controller not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := viewrouter.BuildView(viewrouter.PanelDashboard)
	if sess := session.FromContext(r.Context()); sess != nil {
		view = sess.Router.View()
	}

	// htmx navigations swap the body contents only.
	var component templ.Component = indexContent(view, controller.View())
	if !htmx.IsRequest(r) {
		component = layouts.Base(page, component)
	}
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render index page", "Failed to render page")
}

// HandleRefresh refreshes the snapshot and returns the dashboard partial for
// POST /api/v1/dashboard/refresh.
func HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if controller == nil {
		log.Ctx(r.Context()).Error().Msg("Dashboard controller not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	controller.Refresh(r.Context())
	htmx.Trigger(w, RefreshedEvent)
	apiutil.RenderHTMLComponent(r.Context(), w, dashboardtempl.Content(controller.View()), nil, "Failed to render dashboard", "Failed to render dashboard")
}

// HandleDashboard returns the dashboard partial without refreshing for
// GET /api/v1/dashboard.
func HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if controller == nil {
		log.Ctx(r.Context()).Error().Msg("Dashboard controller not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, dashboardtempl.Content(controller.View()), nil, "Failed to render dashboard", "Failed to render dashboard")
}

func indexContent(view viewrouter.View, dashboardView dashboard.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range []templ.Component{
			navtempl.ViewState(view, false),
			navtempl.Nav(view, false),
			dashboardtempl.Panel(dashboardView),
			searchtempl.Panel(searchPanel),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
