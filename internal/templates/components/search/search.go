package search

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/aikya/companion/internal/search"
)

// Settings mirror the server-side search options so the input only sends
// queries the controller would search.
type Settings struct {
	MinQueryLength int
	Debounce       time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.MinQueryLength <= 0 {
		s.MinQueryLength = search.DefaultMinQueryLength
	}
	if s.Debounce <= 0 {
		s.Debounce = search.DefaultDebounce
	}
	return s
}

// Trigger is the hx-trigger of the search input. Short queries are filtered
// on the client so they never abort a pending search.
func (s Settings) Trigger() string {
	s = s.withDefaults()
	return fmt.Sprintf("input changed[this.value.trim().length >= %d]", s.MinQueryLength)
}

// Panel renders the search section: the query input and an empty results
// region. The indicator becomes visible once the debounce has elapsed.
func Panel(settings Settings) templ.Component {
	settings = settings.withDefaults()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<section id="search-view" class="panel">`)
		builder.WriteString(`<div class="panel-header"><h2>Guest Search</h2></div>`)
		builder.WriteString(`<input id="search-input" type="search" name="guest" placeholder="Guest name" autocomplete="off"`)
		fmt.Fprintf(&builder, ` hx-get="/api/v1/search" hx-trigger="%s" hx-target="#search-results" hx-sync="this:replace" hx-indicator="#search-indicator">`,
			templ.EscapeString(settings.Trigger()))
		fmt.Fprintf(&builder, `<div id="search-indicator" class="htmx-indicator" style="--search-delay:%dms">%s</div>`,
			settings.Debounce.Milliseconds(),
			templ.EscapeString(search.SearchingMessage))
		builder.WriteString(`<div id="search-results" class="search-results"></div>`)
		builder.WriteString(`</section>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

// Results renders the results region content.
func Results(view search.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildResultsHTML(view))
		return err
	})
}

func buildResultsHTML(view search.View) string {
	if len(view.Cards) == 0 {
		return fmt.Sprintf(`<p class="search-message">%s</p>`, templ.EscapeString(view.Message))
	}

	var builder strings.Builder
	builder.WriteString(`<div class="result-cards">`)
	for _, card := range view.Cards {
		builder.WriteString(`<article class="result-card">`)
		fmt.Fprintf(&builder, `<h3>%s</h3>`, templ.EscapeString(card.GuestName))
		fmt.Fprintf(&builder, `<p class="property">%s</p>`, templ.EscapeString(card.Property))
		builder.WriteString(`<dl>`)
		writeField(&builder, "Source", card.Source)
		writeField(&builder, "Check-in", card.CheckInDate)
		writeField(&builder, "Check-out", card.CheckOutDate)
		writeField(&builder, "Guests", card.Guests)
		writeField(&builder, "Amount Paid", card.AmountPaid)
		builder.WriteString(`</dl></article>`)
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func writeField(builder *strings.Builder, label, value string) {
	fmt.Fprintf(builder, `<div><dt>%s</dt><dd>%s</dd></div>`, label, templ.EscapeString(value))
}
