// Package push orchestrates enabling push notifications on a device:
// permission, subscription replacement and registration with the backend.
package push

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

type State int

const (
	StateUnsubscribed State = iota
	StatePermissionRequested
	StateGranted
	StateDenied
	StateSubscribed
)

func (s State) String() string {
	switch s {
	case StateUnsubscribed:
		return "unsubscribed"
	case StatePermissionRequested:
		return "permission_requested"
	case StateGranted:
		return "granted"
	case StateDenied:
		return "denied"
	case StateSubscribed:
		return "subscribed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

var (
	ErrPermissionDenied    = errors.New("notification permission denied")
	ErrPermissionDismissed = errors.New("notification permission not granted")
	ErrInProgress          = errors.New("push enablement already in progress")
)

// Notifications requests the OS/browser notification permission.
type Notifications interface {
	RequestPermission(ctx context.Context) (Permission, error)
}

// Registrations resolves the active service-worker registration.
type Registrations interface {
	Ready(ctx context.Context) (PushManager, error)
}

// PushManager is the push API of a service-worker registration.
// GetSubscription returns nil when there is no current subscription.
type PushManager interface {
	GetSubscription(ctx context.Context) (Subscription, error)
	Subscribe(ctx context.Context, opts SubscribeOptions) (Subscription, error)
}

type Subscription interface {
	Unsubscribe(ctx context.Context) error
	JSON() ([]byte, error)
}

type SubscribeOptions struct {
	UserVisibleOnly      bool
	ApplicationServerKey []byte
}

// Registrar stores a subscription with the backend.
type Registrar interface {
	Subscribe(ctx context.Context, subscription []byte, userAgent string) error
}

// UI reflects manager outcomes to the user.
type UI interface {
	ShowBlocked()
	ShowActive()
	Alert(message string)
}

type Config struct {
	// PublicKey is the base64url VAPID public key.
	PublicKey string
	UserAgent string
}

// Manager walks the enablement state machine. Only one Enable runs at a
// time, so unsubscribing an old subscription always completes before the
// new one is created.
type Manager struct {
	notifications Notifications
	registrations Registrations
	registrar     Registrar
	ui            UI
	cfg           Config

	mu    sync.Mutex
	state State
}

func NewManager(cfg Config, notifications Notifications, registrations Registrations, registrar Registrar, ui UI) *Manager {
	return &Manager{
		notifications: notifications,
		registrations: registrations,
		registrar:     registrar,
		ui:            ui,
		cfg:           cfg,
		state:         StateUnsubscribed,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Enable runs the full enablement flow. Subscription failures are alerted
// to the user and returned; permission outcomes only change UI state.
func (m *Manager) Enable(ctx context.Context) error {
	logger := log.Ctx(ctx)

	m.mu.Lock()
	switch m.state {
	case StateSubscribed:
		m.mu.Unlock()
		return nil
	case StateDenied:
		m.mu.Unlock()
		return ErrPermissionDenied
	case StatePermissionRequested, StateGranted:
		m.mu.Unlock()
		return ErrInProgress
	}
	m.state = StatePermissionRequested
	m.mu.Unlock()

	permission, err := m.notifications.RequestPermission(ctx)
	if err != nil {
		m.setState(StateUnsubscribed)
		return fmt.Errorf("request permission: %w", err)
	}

	switch permission {
	case PermissionGranted:
		m.setState(StateGranted)
	case PermissionDenied:
		m.setState(StateDenied)
		logger.Info().Msg("Notification permission denied")
		m.ui.ShowBlocked()
		return ErrPermissionDenied
	default:
		m.setState(StateUnsubscribed)
		return ErrPermissionDismissed
	}

	if err := m.subscribe(ctx); err != nil {
		m.setState(StateUnsubscribed)
		logger.Error().Err(err).Msg("Push subscription failed")
		m.ui.Alert(err.Error())
		return err
	}

	m.setState(StateSubscribed)
	m.ui.ShowActive()
	logger.Info().Msg("Push notifications enabled")
	return nil
}

func (m *Manager) subscribe(ctx context.Context) error {
	pushManager, err := m.registrations.Ready(ctx)
	if err != nil {
		return fmt.Errorf("service worker registration: %w", err)
	}

	existing, err := pushManager.GetSubscription(ctx)
	if err != nil {
		return fmt.Errorf("get existing subscription: %w", err)
	}
	if existing != nil {
		// A subscription created with different key material is dead to the
		// push service; it must be gone before the replacement is created.
		if err := existing.Unsubscribe(ctx); err != nil {
			return fmt.Errorf("unsubscribe existing subscription: %w", err)
		}
	}

	key, err := DecodeApplicationServerKey(m.cfg.PublicKey)
	if err != nil {
		return err
	}

	subscription, err := pushManager.Subscribe(ctx, SubscribeOptions{
		UserVisibleOnly:      true,
		ApplicationServerKey: key,
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	payload, err := subscription.JSON()
	if err != nil {
		return fmt.Errorf("serialize subscription: %w", err)
	}

	if err := m.registrar.Subscribe(ctx, payload, m.cfg.UserAgent); err != nil {
		return fmt.Errorf("register subscription: %w", err)
	}
	return nil
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
