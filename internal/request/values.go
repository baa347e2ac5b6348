package request

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/viewrouter"
)

// Value reads key from the query string, then the form body, then the query
// of the HX-Current-URL header.
func Value(r *http.Request, key string) string {
	if value := strings.TrimSpace(r.URL.Query().Get(key)); value != "" {
		return value
	}
	if r.Method == http.MethodPost {
		if value := strings.TrimSpace(r.PostFormValue(key)); value != "" {
			return value
		}
	}

	currentURL := strings.TrimSpace(r.Header.Get("HX-Current-URL"))
	if currentURL == "" {
		return ""
	}
	parsed, err := url.Parse(currentURL)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Err(err).
			Str("hx_current_url", currentURL).
			Msg("Failed to parse HX-Current-URL")
		return ""
	}
	return strings.TrimSpace(parsed.Query().Get(key))
}

// Panel parses the panel parameter of a navigation request.
func Panel(r *http.Request) (viewrouter.Panel, error) {
	return viewrouter.ParsePanel(Value(r, "panel"))
}

// GuestQuery returns the raw guest search text. It is not trimmed so the
// search controller sees exactly what was typed.
func GuestQuery(r *http.Request) string {
	if value := r.URL.Query().Get("guest"); value != "" {
		return value
	}
	return r.URL.Query().Get("q")
}
