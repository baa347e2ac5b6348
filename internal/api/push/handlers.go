// internal/api/push/handlers.go
package push

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/api/apiutil"
	"github.com/aikya/companion/internal/backend"
	"github.com/aikya/companion/internal/db"
)

const maxSubscriptionBytes = 4 << 10

// Store records subscriptions for server-side delivery.
type Store interface {
	UpsertPushSubscription(ctx context.Context, arg db.UpsertPushSubscriptionParams) (db.PushSubscription, error)
}

// Forwarder relays subscriptions to the booking backend.
type Forwarder interface {
	Subscribe(ctx context.Context, subscription []byte, userAgent string) error
}

var (
	store     Store
	forwarder Forwarder
	initOnce  sync.Once
)

// InitHandlers must be called during server startup before handling requests.
// forwarder may be nil when the booking backend does not take subscriptions.
func InitHandlers(s Store, f Forwarder) {
	if s == nil {
		log.Warn().Msg("InitHandlers called with nil store; push handlers will be unavailable")
		return
	}
	initOnce.Do(func() {
		store = s
		forwarder = f
	})
}

type subscriptionKeys struct {
	P256dh string `json:"p256dh" validate:"required,max=256"`
	Auth   string `json:"auth" validate:"required,max=64"`
}

// subscriptionPayload is the browser's PushSubscription JSON.
type subscriptionPayload struct {
	Endpoint string           `json:"endpoint" validate:"required,url,startswith=https://,max=2048"`
	Keys     subscriptionKeys `json:"keys" validate:"required"`
}

// HandleSubscribe accepts the backend-compatible form for
// POST /api/v1/push/subscribe: subscription=<json>&userAgent=<ua>.
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if store == nil {
		log.Ctx(r.Context()).Error().Msg("Push store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := subscribe(w, r); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func subscribe(w http.ResponseWriter, r *http.Request) error {
	logger := log.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxSubscriptionBytes)
	if err := r.ParseForm(); err != nil {
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form", Err: err}
	}
	if api := r.PostForm.Get("api"); api != "" && api != "subscribe" {
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Unsupported api action"}
	}

	raw := strings.TrimSpace(r.PostForm.Get("subscription"))
	if raw == "" {
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "subscription is required"}
	}

	var payload subscriptionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "subscription must be JSON", Err: err}
	}
	if err := apiutil.ValidateStruct(payload); err != nil {
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}

	userAgent := r.PostForm.Get("userAgent")
	if userAgent == "" {
		userAgent = r.UserAgent()
	}

	saved, err := store.UpsertPushSubscription(r.Context(), db.UpsertPushSubscriptionParams{
		Endpoint:  payload.Endpoint,
		P256dh:    payload.Keys.P256dh,
		Auth:      payload.Keys.Auth,
		UserAgent: userAgent,
	})
	if err != nil {
		return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save subscription", Err: err}
	}
	logger.Info().Int64("subscription_id", saved.ID).Msg("Push subscription saved")

	if forwarder == nil {
		return nil
	}
	if err := forwarder.Subscribe(r.Context(), []byte(raw), userAgent); err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			logger.Debug().Msg("Backend not configured; subscription kept locally")
			return nil
		}
		return apiutil.HandlerError{Status: http.StatusBadGateway, Message: "Failed to register subscription with backend", Err: err}
	}
	return nil
}
