//go:build js && wasm

// Package jsutil bridges JavaScript promises and Go calls for the wasm
// builds.
package jsutil

import (
	"context"
	"errors"
	"syscall/js"
)

// Error wraps a rejected promise value.
type Error struct {
	Value js.Value
}

func (e *Error) Error() string {
	if e.Value.Type() == js.TypeObject {
		if msg := e.Value.Get("message"); msg.Type() == js.TypeString {
			return msg.String()
		}
	}
	return e.Value.String()
}

// Await blocks until promise settles or ctx is done. It must not be called
// from the JavaScript event loop goroutine.
func Await(ctx context.Context, promise js.Value) (js.Value, error) {
	type settled struct {
		value js.Value
		err   error
	}
	done := make(chan settled, 1)

	onResolve := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- settled{value: arg(args)}
		return nil
	})
	onReject := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- settled{err: &Error{Value: arg(args)}}
		return nil
	})
	promise.Call("then", onResolve, onReject)

	select {
	case s := <-done:
		onResolve.Release()
		onReject.Release()
		return s.value, s.err
	case <-ctx.Done():
		// The callbacks stay alive: the promise may still settle and the
		// buffered channel absorbs it.
		return js.Undefined(), ctx.Err()
	}
}

// NewPromise runs fn on its own goroutine and exposes the outcome as a
// JavaScript promise.
func NewPromise(fn func() (any, error)) js.Value {
	executor := js.FuncOf(func(this js.Value, args []js.Value) any {
		resolve, reject := args[0], args[1]
		go func() {
			value, err := fn()
			if err != nil {
				var jsErr *Error
				if errors.As(err, &jsErr) {
					reject.Invoke(jsErr.Value)
					return
				}
				reject.Invoke(js.Global().Get("Error").New(err.Error()))
				return
			}
			resolve.Invoke(value)
		}()
		return nil
	})
	defer executor.Release()
	return js.Global().Get("Promise").New(executor)
}

// ByID returns the element with id, or false when it is not in the page.
func ByID(id string) (js.Value, bool) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return js.Null(), false
	}
	return el, true
}

func arg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}
