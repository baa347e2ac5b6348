// Package notify delivers Web Push messages to every registered browser.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/db"
	"github.com/aikya/companion/internal/worker"
)

var ErrNotConfigured = errors.New("push delivery is not configured")

// Store lists and prunes registered subscriptions.
type Store interface {
	ListPushSubscriptions(ctx context.Context) ([]db.PushSubscription, error)
	DeletePushSubscriptionByEndpoint(ctx context.Context, endpoint string) (int64, error)
}

type Options struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string
	TTL             int
	HTTPClient      webpush.HTTPClient
}

// Result counts the outcome of one broadcast.
type Result struct {
	Sent   int
	Pruned int
	Failed int
}

type Sender struct {
	store Store
	opts  Options
}

func NewSender(store Store, opts Options) *Sender {
	return &Sender{store: store, opts: opts}
}

func (s *Sender) Configured() bool {
	return s.opts.VAPIDPublicKey != "" && s.opts.VAPIDPrivateKey != ""
}

// Broadcast sends the payload to every subscription. Subscriptions the push
// service reports as gone (404 or 410) are deleted. Other per-subscription
// failures are counted and logged; only a store failure aborts.
func (s *Sender) Broadcast(ctx context.Context, payload worker.Payload) (Result, error) {
	var result Result
	if !s.Configured() {
		return result, ErrNotConfigured
	}

	message, err := payload.Encode()
	if err != nil {
		return result, fmt.Errorf("encode payload: %w", err)
	}

	subs, err := s.store.ListPushSubscriptions(ctx)
	if err != nil {
		return result, fmt.Errorf("list subscriptions: %w", err)
	}

	logger := log.Ctx(ctx)
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		statusCode, err := s.send(ctx, message, sub)
		switch {
		case err != nil:
			result.Failed++
			logger.Warn().Err(err).Int64("subscription_id", sub.ID).Msg("Push delivery failed")
		case statusCode == http.StatusNotFound || statusCode == http.StatusGone:
			if _, err := s.store.DeletePushSubscriptionByEndpoint(ctx, sub.Endpoint); err != nil {
				return result, fmt.Errorf("prune subscription %d: %w", sub.ID, err)
			}
			result.Pruned++
			logger.Info().Int64("subscription_id", sub.ID).Int("status", statusCode).Msg("Pruned expired push subscription")
		case statusCode >= 200 && statusCode < 300:
			result.Sent++
		default:
			result.Failed++
			logger.Warn().Int64("subscription_id", sub.ID).Int("status", statusCode).Msg("Push service rejected message")
		}
	}

	logger.Info().
		Int("sent", result.Sent).
		Int("pruned", result.Pruned).
		Int("failed", result.Failed).
		Msg("Push broadcast complete")
	return result, nil
}

func (s *Sender) send(ctx context.Context, message []byte, sub db.PushSubscription) (int, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, message, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.opts.HTTPClient,
		Subscriber:      s.opts.Subject,
		TTL:             s.opts.TTL,
		VAPIDPublicKey:  s.opts.VAPIDPublicKey,
		VAPIDPrivateKey: s.opts.VAPIDPrivateKey,
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
