// internal/api/search/handlers.go
package search

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/api/apiutil"
	"github.com/aikya/companion/internal/request"
	"github.com/aikya/companion/internal/search"
	"github.com/aikya/companion/internal/session"
	navtempl "github.com/aikya/companion/internal/templates/components/nav"
	searchtempl "github.com/aikya/companion/internal/templates/components/search"
)

// HandleSearch runs a debounced guest search for GET /api/v1/search?guest=.
// Queries that are too short, superseded by a later keystroke or answered
// after a newer search get 204 so htmx leaves the page alone.
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	sess := session.FromContext(r.Context())
	if sess == nil {
		logger.Error().Msg("Search request without session")
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}

	result, err := sess.Search.Submit(r.Context(), request.GuestQuery(r))
	switch {
	case errors.Is(err, search.ErrQueryTooShort),
		errors.Is(err, search.ErrSuperseded),
		errors.Is(err, search.ErrStale):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Debug().Err(err).Msg("Search request abandoned")
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		logger.Error().Err(err).Msg("Search failed")
		http.Error(w, search.FailedMessage, http.StatusInternalServerError)
		return
	}

	component := resultsWithNav(search.BuildView(result), sess)
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render search results", "Failed to render search results")
}

func resultsWithNav(view search.View, sess *session.Session) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := searchtempl.Results(view).Render(ctx, w); err != nil {
			return err
		}
		return navtempl.Switch(sess.Router.View()).Render(ctx, w)
	})
}
