//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall/js"

	"github.com/aikya/companion/internal/jsutil"
	"github.com/aikya/companion/internal/push"
)

type notifications struct{}

func (notifications) RequestPermission(ctx context.Context) (push.Permission, error) {
	result, err := jsutil.Await(ctx, js.Global().Get("Notification").Call("requestPermission"))
	if err != nil {
		return push.PermissionDefault, err
	}
	return push.Permission(result.String()), nil
}

type registrations struct {
	container js.Value
}

func (r registrations) Ready(ctx context.Context) (push.PushManager, error) {
	registration, err := jsutil.Await(ctx, r.container.Get("ready"))
	if err != nil {
		return nil, err
	}
	return pushManager{value: registration.Get("pushManager")}, nil
}

type pushManager struct {
	value js.Value
}

func (p pushManager) GetSubscription(ctx context.Context) (push.Subscription, error) {
	sub, err := jsutil.Await(ctx, p.value.Call("getSubscription"))
	if err != nil {
		return nil, err
	}
	if sub.IsNull() || sub.IsUndefined() {
		return nil, nil
	}
	return subscription{value: sub}, nil
}

func (p pushManager) Subscribe(ctx context.Context, opts push.SubscribeOptions) (push.Subscription, error) {
	key := js.Global().Get("Uint8Array").New(len(opts.ApplicationServerKey))
	js.CopyBytesToJS(key, opts.ApplicationServerKey)

	options := js.Global().Get("Object").New()
	options.Set("userVisibleOnly", opts.UserVisibleOnly)
	options.Set("applicationServerKey", key)

	sub, err := jsutil.Await(ctx, p.value.Call("subscribe", options))
	if err != nil {
		return nil, err
	}
	return subscription{value: sub}, nil
}

type subscription struct {
	value js.Value
}

func (s subscription) Unsubscribe(ctx context.Context) error {
	_, err := jsutil.Await(ctx, s.value.Call("unsubscribe"))
	return err
}

func (s subscription) JSON() ([]byte, error) {
	encoded := js.Global().Get("JSON").Call("stringify", s.value)
	if encoded.Type() != js.TypeString {
		return nil, fmt.Errorf("subscription is not serializable")
	}
	return []byte(encoded.String()), nil
}

// registrar posts subscriptions to the companion server, which stores them
// and forwards them to the booking backend.
type registrar struct {
	endpoint string
	client   *http.Client
}

func newRegistrar(subscribeURL string) *registrar {
	base := js.Global().Get("location").Get("href").String()
	endpoint := subscribeURL
	if parsedBase, err := url.Parse(base); err == nil {
		if ref, err := url.Parse(subscribeURL); err == nil {
			endpoint = parsedBase.ResolveReference(ref).String()
		}
	}
	return &registrar{endpoint: endpoint, client: http.DefaultClient}
}

func (r *registrar) Subscribe(ctx context.Context, payload []byte, userAgent string) error {
	form := url.Values{}
	form.Set("api", "subscribe")
	form.Set("subscription", string(payload))
	form.Set("userAgent", userAgent)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server responded %d", resp.StatusCode)
	}
	return nil
}

type pushUI struct{}

func (pushUI) ShowBlocked() {
	setButton("enable-push", "Notifications Blocked")
}

func (pushUI) ShowActive() {
	setButton("enable-push", "Notifications Active")
}

func (pushUI) Alert(message string) {
	js.Global().Call("alert", "Failed to enable notifications: "+message)
}

func setButton(id, text string) {
	if el, ok := jsutil.ByID(id); ok {
		el.Set("textContent", text)
		el.Set("disabled", true)
	}
}
