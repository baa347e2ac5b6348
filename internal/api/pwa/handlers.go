// internal/api/pwa/handlers.go
package pwa

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/api/apiutil"
)

type Icon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// Manifest is the web app manifest served at /manifest.json.
type Manifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	StartURL        string `json:"start_url"`
	Scope           string `json:"scope"`
	Display         string `json:"display"`
	BackgroundColor string `json:"background_color"`
	ThemeColor      string `json:"theme_color"`
	Icons           []Icon `json:"icons"`
}

func NewManifest(name, shortName, themeColor string) Manifest {
	if shortName == "" {
		shortName = name
	}
	return Manifest{
		Name:            name,
		ShortName:       shortName,
		StartURL:        "/",
		Scope:           "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      themeColor,
		Icons: []Icon{
			{Src: "/static/icons/icon-192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/static/icons/icon-512.png", Sizes: "512x512", Type: "image/png", Purpose: "any maskable"},
		},
	}
}

var (
	manifest  Manifest
	staticDir string
	initOnce  sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(m Manifest, dir string) {
	initOnce.Do(func() {
		manifest = m
		staticDir = dir
	})
}

// HandleManifest serves GET /manifest.json.
func HandleManifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	if err := apiutil.WriteJSON(w, http.StatusOK, manifest); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write manifest")
	}
}

// HandleServiceWorker serves GET /sw.js from the static directory so the
// worker can control the whole origin.
func HandleServiceWorker(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(staticDir, "sw.js")
	if _, err := os.Stat(path); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("path", path).Msg("Service worker script missing")
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Service-Worker-Allowed", "/")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	http.ServeFile(w, r, path)
}
