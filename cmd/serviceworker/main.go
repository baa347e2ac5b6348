//go:build js && wasm

// cmd/serviceworker/main.go
package main

import (
	"context"
	"net/url"
	"os"
	"syscall/js"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/jsutil"
	"github.com/aikya/companion/internal/worker"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Str("component", "serviceworker").Logger()
	ctx := log.Logger.WithContext(context.Background())

	self := js.Global().Get("self")
	w := worker.New(
		worker.Config{CacheVersion: versionFrom(self.Get("location").Get("search").String())},
		cacheStorage{value: self.Get("caches")},
		network{},
		registration{self: self},
		clients{value: self.Get("clients")},
	)

	api := js.Global().Get("Object").New()
	api.Set("install", js.FuncOf(func(this js.Value, args []js.Value) any {
		return jsutil.NewPromise(func() (any, error) {
			return nil, w.Install(ctx)
		})
	}))
	api.Set("activate", js.FuncOf(func(this js.Value, args []js.Value) any {
		return jsutil.NewPromise(func() (any, error) {
			if err := w.Activate(ctx); err != nil {
				return nil, err
			}
			_, err := jsutil.Await(ctx, self.Get("clients").Call("claim"))
			return nil, err
		})
	}))
	api.Set("fetch", js.FuncOf(func(this js.Value, args []js.Value) any {
		request := args[0]
		return jsutil.NewPromise(func() (any, error) {
			return w.Fetch(ctx, request)
		})
	}))
	api.Set("push", js.FuncOf(func(this js.Value, args []js.Value) any {
		var (
			data    []byte
			present bool
		)
		if len(args) > 0 && args[0].Type() == js.TypeString {
			data, present = []byte(args[0].String()), true
		}
		return jsutil.NewPromise(func() (any, error) {
			return nil, w.Push(ctx, data, present)
		})
	}))
	api.Set("notificationClick", js.FuncOf(func(this js.Value, args []js.Value) any {
		n := notification{value: args[0]}
		return jsutil.NewPromise(func() (any, error) {
			return nil, w.NotificationClick(ctx, n)
		})
	}))

	self.Call("__resolveCompanionWorker", api)
	log.Info().Str("cache", w.Config().CacheName()).Msg("Service worker runtime ready")
	select {}
}

// versionFrom reads the cache version from the worker script's query
// string, e.g. "?version=v2".
func versionFrom(search string) string {
	values, err := url.ParseQuery(trimQuestion(search))
	if err != nil {
		return ""
	}
	return values.Get("version")
}

func trimQuestion(s string) string {
	if len(s) > 0 && s[0] == '?' {
		return s[1:]
	}
	return s
}
