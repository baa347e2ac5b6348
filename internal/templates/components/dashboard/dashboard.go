package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/aikya/companion/internal/dashboard"
	"github.com/aikya/companion/internal/status"
)

// Panel renders the dashboard section with its refresh control.
func Panel(view dashboard.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<section id="dashboard-view" class="panel">`)
		builder.WriteString(`<div class="panel-header"><h2>Dashboard</h2>`)
		builder.WriteString(`<button id="refresh-btn" type="button" class="btn" hx-post="/api/v1/dashboard/refresh" hx-target="#dashboard-content" hx-swap="outerHTML">Refresh</button>`)
		builder.WriteString(`</div>`)
		builder.WriteString(`<div hidden hx-post="/api/v1/dashboard/refresh" hx-trigger="load" hx-target="#dashboard-content" hx-swap="outerHTML"></div>`)
		builder.WriteString(buildContentHTML(view))
		builder.WriteString(`</section>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

// Content renders the swappable part of the dashboard.
func Content(view dashboard.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildContentHTML(view))
		return err
	})
}

func buildContentHTML(view dashboard.View) string {
	var builder strings.Builder
	builder.WriteString(`<div id="dashboard-content">`)
	builder.WriteString(StatusBadgeHTML(view.Status))
	builder.WriteString(`<div class="day-grid">`)
	builder.WriteString(buildDayHTML("today", "Today", view.Today, view.HasData, view.TodayCheckins, view.TodayCheckouts))
	builder.WriteString(buildDayHTML("tomorrow", "Tomorrow", view.Tomorrow, view.HasData, view.TomorrowCheckins, view.TomorrowCheckouts))
	builder.WriteString(`</div></div>`)
	return builder.String()
}

// StatusBadgeHTML renders the status badge the page bindings flash into.
func StatusBadgeHTML(s status.Status) string {
	return fmt.Sprintf(`<span id="status-badge" class="status-badge status-%s" data-tone="%s">%s</span>`,
		templ.EscapeString(string(s.Tone)),
		templ.EscapeString(string(s.Tone)),
		templ.EscapeString(s.Text),
	)
}

func buildDayHTML(prefix, heading string, stats dashboard.DayStats, hasData bool, checkins, checkouts dashboard.List) string {
	date, day := "--/--", ""
	arrivals, departures, occupied := "-", "-", "-"
	if hasData {
		date, day = stats.Date, stats.Day
		arrivals, departures, occupied = stats.Checkins, stats.Checkouts, stats.Occupied
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, `<article class="day-card" id="%s-card">`, prefix)
	fmt.Fprintf(&builder, `<h3>%s <span id="%s-date" class="day-date">%s</span> <span id="%s-day" class="day-name">%s</span></h3>`,
		heading, prefix, templ.EscapeString(date), prefix, templ.EscapeString(day))
	builder.WriteString(`<dl class="day-stats">`)
	fmt.Fprintf(&builder, `<div><dt>Arrivals</dt><dd id="%s-checkins">%s</dd></div>`, prefix, templ.EscapeString(arrivals))
	fmt.Fprintf(&builder, `<div><dt>Departures</dt><dd id="%s-checkouts">%s</dd></div>`, prefix, templ.EscapeString(departures))
	fmt.Fprintf(&builder, `<div><dt>Occupied</dt><dd id="%s-occupied">%s</dd></div>`, prefix, templ.EscapeString(occupied))
	builder.WriteString(`</dl>`)
	builder.WriteString(`<h4>Check-ins</h4>`)
	builder.WriteString(buildListHTML(checkins))
	builder.WriteString(`<h4>Check-outs</h4>`)
	builder.WriteString(buildListHTML(checkouts))
	builder.WriteString(`</article>`)
	return builder.String()
}

func buildListHTML(list dashboard.List) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, `<ul id="%s" class="booking-list">`, templ.EscapeString(list.ID))
	if list.Empty() {
		fmt.Fprintf(&builder, `<li class="empty">%s</li>`, templ.EscapeString(list.EmptyMessage))
	}
	for _, row := range list.Rows {
		fmt.Fprintf(&builder,
			`<li class="booking-row"><span class="guest">%s</span><span class="property">%s</span><button type="button" class="copy-btn" data-copy="%s" aria-label="Copy">Copy</button></li>`,
			templ.EscapeString(row.GuestName),
			templ.EscapeString(row.Property),
			templ.EscapeString(row.CopyPayload),
		)
	}
	builder.WriteString(`</ul>`)
	return builder.String()
}
