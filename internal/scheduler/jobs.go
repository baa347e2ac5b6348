package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const (
	JobDashboardRefresh = "dashboard_refresh"
	JobDailyDigest      = "daily_digest"
	JobSessionSweep     = "session_sweep"
)

type Schedules struct {
	DashboardRefresh string
	Digest           string
	SessionSweep     string
	SessionIdle      time.Duration
}

type DashboardRefresher interface {
	Refresh(ctx context.Context)
}

type SessionSweeper interface {
	Sweep(idle time.Duration) int
}

// Jobs are the tasks the companion runs on a schedule. A nil task or an empty
// schedule leaves the job unregistered.
type Jobs struct {
	Dashboard DashboardRefresher
	Digest    func(ctx context.Context) error
	Sessions  SessionSweeper
}

// RegisterJobs adds every configured job. Jobs never overlap with themselves.
func RegisterJobs(s *Service, schedules Schedules, jobs Jobs) error {
	singleton := gocron.WithSingletonMode(gocron.LimitModeReschedule)

	if jobs.Dashboard != nil && strings.TrimSpace(schedules.DashboardRefresh) != "" {
		if _, err := s.AddJob(JobDashboardRefresh, schedules.DashboardRefresh, func(ctx context.Context) {
			jobs.Dashboard.Refresh(ctx)
		}, singleton); err != nil {
			return err
		}
	}

	if jobs.Digest != nil && strings.TrimSpace(schedules.Digest) != "" {
		if _, err := s.AddJob(JobDailyDigest, schedules.Digest, func(ctx context.Context) {
			if err := jobs.Digest(ctx); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("Daily digest not sent")
			}
		}, singleton); err != nil {
			return err
		}
	} else {
		log.Info().Msg("Daily digest disabled")
	}

	if jobs.Sessions != nil && strings.TrimSpace(schedules.SessionSweep) != "" && schedules.SessionIdle > 0 {
		if _, err := s.AddJob(JobSessionSweep, schedules.SessionSweep, func(ctx context.Context) {
			removed := jobs.Sessions.Sweep(schedules.SessionIdle)
			log.Ctx(ctx).Debug().Int("removed", removed).Msg("Idle sessions swept")
		}, singleton); err != nil {
			return err
		}
	}

	return nil
}
