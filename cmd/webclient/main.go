//go:build js && wasm

// cmd/webclient/main.go
package main

import (
	"context"
	"errors"
	"os"
	"syscall/js"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/jsutil"
	"github.com/aikya/companion/internal/push"
	"github.com/aikya/companion/internal/status"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Str("component", "webclient").Logger()
	ctx := log.Logger.WithContext(context.Background())

	body := js.Global().Get("document").Get("body")
	dataset := body.Get("dataset")
	navigator := js.Global().Get("navigator")

	go registerServiceWorker(ctx, navigator, dataset.Get("swUrl").String())

	indicator := status.NewIndicator(badgeDisplay{})
	bindCopyButtons(ctx, indicator)
	bindInstallPrompt(ctx)

	if vapidKey := dataset.Get("vapidKey").String(); vapidKey != "" && supportsPush(navigator) {
		manager := push.NewManager(
			push.Config{PublicKey: vapidKey, UserAgent: navigator.Get("userAgent").String()},
			notifications{},
			registrations{container: navigator.Get("serviceWorker")},
			newRegistrar(dataset.Get("subscribeUrl").String()),
			pushUI{},
		)
		bindEnablePush(ctx, manager)
	} else {
		hide("enable-push")
	}

	log.Info().Msg("Web client ready")
	select {}
}

func registerServiceWorker(ctx context.Context, navigator js.Value, swURL string) {
	logger := log.Ctx(ctx)
	if navigator.Get("serviceWorker").IsUndefined() || swURL == "" {
		logger.Warn().Msg("Service workers unavailable")
		return
	}

	opts := map[string]any{"scope": "/"}
	if _, err := jsutil.Await(ctx, navigator.Get("serviceWorker").Call("register", swURL, opts)); err != nil {
		logger.Error().Err(err).Str("url", swURL).Msg("Service worker registration failed")
		return
	}
	logger.Info().Str("url", swURL).Msg("Service worker registered")
}

func supportsPush(navigator js.Value) bool {
	return !navigator.Get("serviceWorker").IsUndefined() &&
		!js.Global().Get("PushManager").IsUndefined() &&
		!js.Global().Get("Notification").IsUndefined()
}

func bindEnablePush(ctx context.Context, manager *push.Manager) {
	button, ok := jsutil.ByID("enable-push")
	if !ok {
		return
	}
	button.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
		go func() {
			err := manager.Enable(ctx)
			switch {
			case err == nil:
			case errors.Is(err, push.ErrInProgress), errors.Is(err, push.ErrPermissionDismissed):
				log.Ctx(ctx).Debug().Err(err).Msg("Enable notifications skipped")
			default:
				log.Ctx(ctx).Warn().Err(err).Msg("Enable notifications failed")
			}
		}()
		return nil
	}))
}

func hide(id string) {
	if el, ok := jsutil.ByID(id); ok {
		el.Set("hidden", true)
	}
}
