// cmd/server/server.go
package main

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/api"
	dashboardapi "github.com/aikya/companion/internal/api/dashboard"
	"github.com/aikya/companion/internal/api/nav"
	pushapi "github.com/aikya/companion/internal/api/push"
	"github.com/aikya/companion/internal/api/pwa"
	searchapi "github.com/aikya/companion/internal/api/search"
	"github.com/aikya/companion/internal/backend"
	"github.com/aikya/companion/internal/config"
	"github.com/aikya/companion/internal/dashboard"
	"github.com/aikya/companion/internal/db"
	"github.com/aikya/companion/internal/email"
	"github.com/aikya/companion/internal/notify"
	"github.com/aikya/companion/internal/ratelimit"
	"github.com/aikya/companion/internal/session"
	searchtempl "github.com/aikya/companion/internal/templates/components/search"
	"github.com/aikya/companion/internal/templates/layouts"
)

type dependencies struct {
	config    *config.Config
	database  *db.DB
	backend   *backend.Client
	dashboard *dashboard.Controller
	sessions  *session.Store
	sender    *notify.Sender
	limiter   *ratelimit.Limiter
	mailer    email.EmailSender
}

func newServer(deps *dependencies) *http.Server {
	cfg := deps.config
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithSession(deps.sessions, !cfg.IsDevelopment()),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
		api.WithCORS(cfg.CORS.AllowedOrigins),
	)

	dashboardapi.InitHandlers(deps.dashboard, layouts.Page{
		Title:            cfg.App.Name,
		ThemeColor:       cfg.App.ThemeColor,
		VAPIDPublicKey:   cfg.Push.VAPIDPublicKey,
		SubscribeURL:     "/api/v1/push/subscribe",
		ServiceWorkerURL: serviceWorkerURL(cfg.Worker.CacheVersion),
	}, searchtempl.Settings{
		MinQueryLength: cfg.Search.MinQueryLength,
		Debounce:       cfg.Search.Debounce,
	})
	pushapi.InitHandlers(deps.database.Queries, deps.backend)
	pwa.InitHandlers(pwa.NewManifest(cfg.App.Name, cfg.App.ShortName, cfg.App.ThemeColor), cfg.App.StaticDir)

	registerRoutes(router, cfg.App.StaticDir, deps.limiter)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		// Search requests wait out the debounce and the backend call.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// serviceWorkerURL carries the cache version so a version bump installs a
// new worker.
func serviceWorkerURL(version string) string {
	return "/sw.js?" + url.Values{"version": {version}}.Encode()
}

func registerRoutes(mux *http.ServeMux, staticDir string, limiter *ratelimit.Limiter) {
	// Main page handler
	mux.HandleFunc("/", dashboardapi.HandleIndex)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dashboard routes
	mux.HandleFunc("/api/v1/dashboard", dashboardapi.HandleDashboard)
	mux.HandleFunc("/api/v1/dashboard/refresh", dashboardapi.HandleRefresh)

	// Search and navigation routes
	mux.HandleFunc("/api/v1/search", searchapi.HandleSearch)
	mux.HandleFunc("/api/v1/nav/view", nav.HandleView)

	// Push routes
	mux.Handle("/api/v1/push/subscribe", limiter.Middleware(http.HandlerFunc(pushapi.HandleSubscribe)))

	// Installable app routes
	mux.HandleFunc("/manifest.json", pwa.HandleManifest)
	mux.HandleFunc("/sw.js", pwa.HandleServiceWorker)

	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
