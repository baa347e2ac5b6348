//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/jsutil"
	"github.com/aikya/companion/internal/status"
)

// badgeDisplay draws on #status-badge. The element is looked up on every
// call because dashboard swaps replace it.
type badgeDisplay struct{}

func (badgeDisplay) Current() status.Status {
	el, ok := jsutil.ByID("status-badge")
	if !ok {
		return status.Status{Tone: status.ToneNeutral}
	}
	return status.Status{
		Text: el.Get("textContent").String(),
		Tone: status.Tone(el.Get("dataset").Get("tone").String()),
	}
}

func (badgeDisplay) Show(s status.Status) {
	el, ok := jsutil.ByID("status-badge")
	if !ok {
		return
	}
	el.Set("textContent", s.Text)
	el.Get("dataset").Set("tone", string(s.Tone))
	el.Set("className", "status-badge status-"+string(s.Tone))
}

func bindCopyButtons(ctx context.Context, indicator *status.Indicator) {
	document := js.Global().Get("document")
	document.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
		button := args[0].Get("target").Call("closest", ".copy-btn")
		if button.IsNull() {
			return nil
		}
		text := button.Get("dataset").Get("copy").String()
		go func() {
			clipboard := js.Global().Get("navigator").Get("clipboard")
			if clipboard.IsUndefined() {
				log.Ctx(ctx).Warn().Msg("Clipboard unavailable")
				return
			}
			if _, err := jsutil.Await(ctx, clipboard.Call("writeText", text)); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("Copy failed")
				return
			}
			indicator.Flash(status.Copied, status.CopyConfirmationDuration)
		}()
		return nil
	}))
}

func bindInstallPrompt(ctx context.Context) {
	var deferred js.Value

	js.Global().Call("addEventListener", "beforeinstallprompt", js.FuncOf(func(this js.Value, args []js.Value) any {
		event := args[0]
		event.Call("preventDefault")
		deferred = event
		if button, ok := jsutil.ByID("install-btn"); ok {
			button.Set("hidden", false)
		}
		return nil
	}))

	js.Global().Call("addEventListener", "appinstalled", js.FuncOf(func(this js.Value, args []js.Value) any {
		deferred = js.Value{}
		hide("install-btn")
		return nil
	}))

	button, ok := jsutil.ByID("install-btn")
	if !ok {
		return
	}
	button.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
		if deferred.IsUndefined() || deferred.IsNull() {
			return nil
		}
		prompt := deferred
		deferred = js.Value{}
		prompt.Call("prompt")
		go func() {
			choice, err := jsutil.Await(ctx, prompt.Get("userChoice"))
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("Install prompt failed")
				return
			}
			outcome := choice.Get("outcome").String()
			log.Ctx(ctx).Info().Str("outcome", outcome).Msg("Install prompt answered")
			if outcome == "accepted" {
				hide("install-btn")
			}
		}()
		return nil
	}))
}
