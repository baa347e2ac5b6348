// internal/api/nav/handlers.go
package nav

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/api/apiutil"
	"github.com/aikya/companion/internal/request"
	"github.com/aikya/companion/internal/session"
	navtempl "github.com/aikya/companion/internal/templates/components/nav"
)

// HandleView switches the session's visible panel for
// POST /api/v1/nav/view?panel=. The response carries only out-of-band swaps.
func HandleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := session.FromContext(r.Context())
	if sess == nil {
		log.Ctx(r.Context()).Error().Msg("Navigation request without session")
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}

	panel, err := request.Panel(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.Router.Show(panel)
	apiutil.RenderHTMLComponent(r.Context(), w, navtempl.Switch(sess.Router.View()), nil, "Failed to render navigation", "Failed to render navigation")
}
