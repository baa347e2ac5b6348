//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/aikya/companion/internal/jsutil"
	"github.com/aikya/companion/internal/worker"
)

type cacheStorage struct {
	value js.Value
}

func (c cacheStorage) Open(ctx context.Context, name string) (worker.Cache, error) {
	cache, err := jsutil.Await(ctx, c.value.Call("open", name))
	if err != nil {
		return nil, err
	}
	return namedCache{value: cache}, nil
}

func (c cacheStorage) Keys(ctx context.Context) ([]string, error) {
	keys, err := jsutil.Await(ctx, c.value.Call("keys"))
	if err != nil {
		return nil, err
	}
	names := make([]string, keys.Length())
	for i := range names {
		names[i] = keys.Index(i).String()
	}
	return names, nil
}

func (c cacheStorage) Delete(ctx context.Context, name string) error {
	_, err := jsutil.Await(ctx, c.value.Call("delete", name))
	return err
}

type namedCache struct {
	value js.Value
}

func (c namedCache) AddAll(ctx context.Context, urls []string) error {
	list := make([]any, len(urls))
	for i, u := range urls {
		list[i] = u
	}
	_, err := jsutil.Await(ctx, c.value.Call("addAll", list))
	return err
}

type network struct{}

func (network) Fetch(ctx context.Context, request any) (any, error) {
	return jsutil.Await(ctx, js.Global().Call("fetch", request))
}

type registration struct {
	self js.Value
}

func (r registration) Scope() string {
	return r.self.Get("registration").Get("scope").String()
}

func (r registration) SkipWaiting(ctx context.Context) error {
	_, err := jsutil.Await(ctx, r.self.Call("skipWaiting"))
	return err
}

func (r registration) ShowNotification(ctx context.Context, title string, opts worker.NotificationOptions) error {
	options := map[string]any{
		"body":  opts.Body,
		"icon":  opts.Icon,
		"badge": opts.Badge,
		"data":  map[string]any{"url": opts.Data.URL},
	}
	_, err := jsutil.Await(ctx, r.self.Get("registration").Call("showNotification", title, options))
	return err
}

type clients struct {
	value js.Value
}

func (c clients) OpenWindow(ctx context.Context, url string) error {
	_, err := jsutil.Await(ctx, c.value.Call("openWindow", url))
	return err
}

type notification struct {
	value js.Value
}

func (n notification) Close() {
	n.value.Call("close")
}

func (n notification) Data() worker.NotificationData {
	data := n.value.Get("data")
	if data.Type() != js.TypeObject {
		return worker.NotificationData{}
	}
	if u := data.Get("url"); u.Type() == js.TypeString {
		return worker.NotificationData{URL: u.String()}
	}
	return worker.NotificationData{}
}
