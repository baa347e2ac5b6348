package main

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aikya/companion/internal/config"
	"github.com/aikya/companion/internal/dashboard"
	"github.com/aikya/companion/internal/models"
	"github.com/aikya/companion/internal/notify"
)

type recordingMailer struct {
	mu       sync.Mutex
	subjects []string
}

func (m *recordingMailer) Send(ctx context.Context, recipient, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	return nil
}

// scriptedSource returns each error in turn; a nil error yields the snapshot.
type scriptedSource struct {
	snapshot models.DashboardSnapshot
	errs     []error
	calls    int
}

func (s *scriptedSource) Configured() bool { return true }

func (s *scriptedSource) Dashboard(ctx context.Context) (models.DashboardSnapshot, error) {
	err := s.errs[s.calls]
	s.calls++
	if err != nil {
		return models.DashboardSnapshot{}, err
	}
	return s.snapshot, nil
}

func newDigestDeps(source dashboard.Source, mailer *recordingMailer) *dependencies {
	cfg := config.Default()
	cfg.Email.Recipients = []string{"desk@example.com"}
	return &dependencies{
		config:    cfg,
		dashboard: dashboard.NewController(source),
		sender:    notify.NewSender(nil, notify.Options{}),
		mailer:    mailer,
	}
}

func TestSendDigestMailsFreshSnapshot(t *testing.T) {
	source := &scriptedSource{errs: []error{nil}}
	source.snapshot.Today.Date = "2026-10-15"
	mailer := &recordingMailer{}
	deps := newDigestDeps(source, mailer)

	if err := deps.sendDigest(context.Background()); err != nil {
		t.Fatalf("sendDigest: %v", err)
	}
	if len(mailer.subjects) != 1 {
		t.Fatalf("mailed %d digests, want 1", len(mailer.subjects))
	}
}

func TestSendDigestSkipsMailAfterFailedRefresh(t *testing.T) {
	source := &scriptedSource{errs: []error{nil, errors.New("connection refused")}}
	source.snapshot.Today.Date = "2026-10-14"
	mailer := &recordingMailer{}
	deps := newDigestDeps(source, mailer)
	deps.dashboard.Refresh(context.Background())

	err := deps.sendDigest(context.Background())
	if !errors.Is(err, notify.ErrNoSnapshot) {
		t.Fatalf("err = %v, want ErrNoSnapshot", err)
	}
	if len(mailer.subjects) != 0 {
		t.Fatalf("stale digest mailed: %v", mailer.subjects)
	}
}
