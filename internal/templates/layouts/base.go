package layouts

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

const defaultThemeColor = "#2f6f4f"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Page carries the values the shell exposes to the page bindings.
type Page struct {
	Title            string
	ThemeColor       string
	VAPIDPublicKey   string
	SubscribeURL     string
	ServiceWorkerURL string
}

// Base renders the document shell around content.
func Base(page Page, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		themeColor := themeColorOrDefault(page.ThemeColor, defaultThemeColor)
		title := templ.EscapeString(page.Title)

		var head strings.Builder
		head.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
		head.WriteString(`<meta charset="utf-8">`)
		head.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&head, `<meta name="theme-color" content="%s">`, themeColor)
		fmt.Fprintf(&head, `<title>%s</title>`, title)
		head.WriteString(`<link rel="manifest" href="/manifest.json">`)
		head.WriteString(`<link rel="icon" href="/static/icons/icon-192.png">`)
		head.WriteString(`<link rel="stylesheet" href="/static/styles.css">`)
		fmt.Fprintf(&head, `<style>:root{--theme-primary:%s;}</style>`, themeColor)
		head.WriteString(`<script src="/static/htmx.min.js" defer></script>`)
		head.WriteString(`<script src="/static/app.js" defer></script>`)
		head.WriteString(`</head>`)
		fmt.Fprintf(&head, `<body data-vapid-key="%s" data-subscribe-url="%s" data-sw-url="%s">`,
			templ.EscapeString(page.VAPIDPublicKey),
			templ.EscapeString(page.SubscribeURL),
			templ.EscapeString(page.ServiceWorkerURL),
		)
		fmt.Fprintf(&head, `<header class="app-header"><h1>%s</h1>`, title)
		head.WriteString(`<div class="app-actions">`)
		head.WriteString(`<button id="enable-push" type="button" class="btn">Enable Notifications</button>`)
		head.WriteString(`<button id="install-btn" type="button" class="btn" hidden>Install App</button>`)
		head.WriteString(`</div></header><main id="app">`)
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}

		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func themeColorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !hexColorPattern.MatchString(trimmed) {
		return fallback
	}
	return trimmed
}
