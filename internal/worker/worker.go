// Package worker implements the offline cache and push delivery worker that
// runs in the service-worker context: install, activate, fetch, push and
// notificationclick.
package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	DefaultCachePrefix  = "aikya"
	DefaultCacheVersion = "v2"

	DefaultIcon  = "/static/icons/icon-192.png"
	DefaultBadge = "/static/icons/icon-72.png"
)

// DefaultAssets is the precache manifest: root document, stylesheet,
// script, web manifest and one image.
var DefaultAssets = []string{
	"./",
	"./static/styles.css",
	"./static/app.js",
	"./manifest.json",
	"./static/icons/icon-192.png",
}

type Config struct {
	CachePrefix  string
	CacheVersion string
	Assets       []string
	Icon         string
	Badge        string
}

// CacheName is the name of the current cache generation.
func (c Config) CacheName() string {
	return c.CachePrefix + "-" + c.CacheVersion
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.CachePrefix) == "" {
		c.CachePrefix = DefaultCachePrefix
	}
	if strings.TrimSpace(c.CacheVersion) == "" {
		c.CacheVersion = DefaultCacheVersion
	}
	if len(c.Assets) == 0 {
		c.Assets = append([]string(nil), DefaultAssets...)
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
	if c.Badge == "" {
		c.Badge = DefaultBadge
	}
	return c
}

// CacheStorage is the worker's named cache store.
type CacheStorage interface {
	Open(ctx context.Context, name string) (Cache, error)
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Cache is one named cache. AddAll stores every URL or none of them.
type Cache interface {
	AddAll(ctx context.Context, urls []string) error
}

// Network performs a request against the network. Requests and responses
// are opaque platform values.
type Network interface {
	Fetch(ctx context.Context, request any) (any, error)
}

// Registration is the worker's own registration.
type Registration interface {
	Scope() string
	SkipWaiting(ctx context.Context) error
	ShowNotification(ctx context.Context, title string, opts NotificationOptions) error
}

// Clients controls browser windows belonging to the worker's origin.
type Clients interface {
	OpenWindow(ctx context.Context, url string) error
}

// Notification is a displayed notification delivered to a click handler.
type Notification interface {
	Close()
	Data() NotificationData
}

type NotificationData struct {
	URL string `json:"url,omitempty"`
}

type NotificationOptions struct {
	Body  string
	Icon  string
	Badge string
	Data  NotificationData
}

type Worker struct {
	cfg          Config
	caches       CacheStorage
	network      Network
	registration Registration
	clients      Clients
}

func New(cfg Config, caches CacheStorage, network Network, registration Registration, clients Clients) *Worker {
	return &Worker{
		cfg:          cfg.withDefaults(),
		caches:       caches,
		network:      network,
		registration: registration,
		clients:      clients,
	}
}

func (w *Worker) Config() Config {
	return w.cfg
}

// Install precaches the asset manifest and asks for immediate activation.
// A failure to store any asset fails the install.
func (w *Worker) Install(ctx context.Context) error {
	logger := log.Ctx(ctx)
	logger.Info().Str("cache", w.cfg.CacheName()).Msg("Service worker installing")

	if err := w.registration.SkipWaiting(ctx); err != nil {
		logger.Warn().Err(err).Msg("Skip waiting failed")
	}

	cache, err := w.caches.Open(ctx, w.cfg.CacheName())
	if err != nil {
		return fmt.Errorf("open cache %s: %w", w.cfg.CacheName(), err)
	}
	if err := cache.AddAll(ctx, w.cfg.Assets); err != nil {
		return fmt.Errorf("precache assets: %w", err)
	}
	return nil
}

// Activate deletes every cache generation other than the current one.
func (w *Worker) Activate(ctx context.Context) error {
	logger := log.Ctx(ctx)
	current := w.cfg.CacheName()

	names, err := w.caches.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list caches: %w", err)
	}
	for _, name := range names {
		if name == current {
			continue
		}
		if err := w.caches.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete cache %s: %w", name, err)
		}
		logger.Info().Str("cache", name).Msg("Deleted stale cache")
	}
	logger.Info().Str("cache", current).Msg("Service worker activated")
	return nil
}

// Fetch passes the request straight to the network.
func (w *Worker) Fetch(ctx context.Context, request any) (any, error) {
	return w.network.Fetch(ctx, request)
}

// Push shows a notification for a push payload. present is false when the
// push carried no data.
func (w *Worker) Push(ctx context.Context, data []byte, present bool) error {
	payload := DefaultPayload()
	if present {
		payload = ParsePayload(data)
	}

	return w.registration.ShowNotification(ctx, payload.Title, NotificationOptions{
		Body:  payload.Body,
		Icon:  w.cfg.Icon,
		Badge: w.cfg.Badge,
		Data:  NotificationData{URL: w.registration.Scope()},
	})
}

// NotificationClick closes the notification and opens its URL, falling back
// to the worker scope.
func (w *Worker) NotificationClick(ctx context.Context, n Notification) error {
	n.Close()

	target := n.Data().URL
	if target == "" {
		target = w.registration.Scope()
	}
	if target == "" {
		target = "/"
	}
	return w.clients.OpenWindow(ctx, target)
}
