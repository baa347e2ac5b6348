package scheduler

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })
	return svc
}

func TestAddJobValidatesInput(t *testing.T) {
	svc := newTestService(t)
	noop := func(context.Context) {}

	if _, err := svc.AddJob(" ", "* * * * *", noop); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("err = %v, want ErrEmptyJobName", err)
	}
	if _, err := svc.AddJob("job", "", noop); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("err = %v, want ErrEmptyCronExpr", err)
	}
	if _, err := svc.AddJob("job", "not a cron", noop); err == nil {
		t.Fatal("expected invalid cron expression to fail")
	}

	var nilService *Service
	if _, err := nilService.AddJob("job", "* * * * *", noop); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
}

func TestAddJobRunsTaskWithCancellableContext(t *testing.T) {
	svc := newTestService(t)
	ran := make(chan context.Context, 1)

	_, err := svc.AddJob("immediate", "0 0 1 1 *", func(ctx context.Context) {
		select {
		case ran <- ctx:
		default:
		}
	}, gocron.WithStartAt(gocron.WithStartImmediately()))
	if err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	svc.Start()

	var ctx context.Context
	select {
	case ctx = <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if ctx.Err() == nil {
		t.Fatal("expected job context to be cancelled after Stop")
	}
}

type countingDashboard struct{ calls int }

func (d *countingDashboard) Refresh(ctx context.Context) { d.calls++ }

type countingSessions struct{}

func (countingSessions) Sweep(idle time.Duration) int { return 0 }

func jobNames(svc *Service) []string {
	var names []string
	for _, job := range svc.Jobs() {
		names = append(names, job.Name())
	}
	sort.Strings(names)
	return names
}

func TestRegisterJobs(t *testing.T) {
	schedules := Schedules{
		DashboardRefresh: "*/5 * * * *",
		Digest:           "0 7 * * *",
		SessionSweep:     "*/15 * * * *",
		SessionIdle:      time.Hour,
	}

	t.Run("all", func(t *testing.T) {
		svc := newTestService(t)
		err := RegisterJobs(svc, schedules, Jobs{
			Dashboard: &countingDashboard{},
			Digest:    func(context.Context) error { return nil },
			Sessions:  countingSessions{},
		})
		if err != nil {
			t.Fatalf("RegisterJobs: %v", err)
		}
		want := []string{JobDailyDigest, JobDashboardRefresh, JobSessionSweep}
		got := jobNames(svc)
		if len(got) != len(want) {
			t.Fatalf("jobs = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("jobs = %v, want %v", got, want)
			}
		}
	})

	t.Run("digest_disabled", func(t *testing.T) {
		svc := newTestService(t)
		err := RegisterJobs(svc, schedules, Jobs{
			Dashboard: &countingDashboard{},
			Sessions:  countingSessions{},
		})
		if err != nil {
			t.Fatalf("RegisterJobs: %v", err)
		}
		for _, name := range jobNames(svc) {
			if name == JobDailyDigest {
				t.Fatal("digest registered without a sender")
			}
		}
	})

	t.Run("bad_schedule", func(t *testing.T) {
		svc := newTestService(t)
		bad := schedules
		bad.DashboardRefresh = "sometimes"
		if err := RegisterJobs(svc, bad, Jobs{Dashboard: &countingDashboard{}}); err == nil {
			t.Fatal("expected error for invalid schedule")
		}
	})
}
