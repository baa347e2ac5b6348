// cmd/server/digest.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/email"
	"github.com/aikya/companion/internal/models"
	"github.com/aikya/companion/internal/notify"
)

// fetchedDashboard hands one refreshed snapshot to every digest channel.
type fetchedDashboard struct {
	snapshot models.DashboardSnapshot
}

func (f fetchedDashboard) FreshSnapshot(context.Context) (models.DashboardSnapshot, bool) {
	return f.snapshot, true
}

// sendDigest pushes the daily digest to subscribers and mails it to the
// configured recipients. Either channel may be disabled. Nothing is sent when
// the refresh fails.
func (d *dependencies) sendDigest(ctx context.Context) error {
	logger := log.Ctx(ctx)

	snapshot, fresh := d.dashboard.FreshSnapshot(ctx)
	if !d.sender.Configured() && d.mailer == nil {
		return nil
	}
	if !fresh {
		return fmt.Errorf("digest: %w", notify.ErrNoSnapshot)
	}

	var errs []error
	if d.sender.Configured() {
		result, err := d.sender.SendDigest(ctx, fetchedDashboard{snapshot: snapshot})
		if err != nil {
			errs = append(errs, fmt.Errorf("push digest: %w", err))
		} else {
			logger.Info().Int("sent", result.Sent).Int("pruned", result.Pruned).Int("failed", result.Failed).Msg("Push digest sent")
		}
	}

	if d.mailer != nil {
		digest := email.BuildDigest(d.config.App.Name, snapshot)
		if err := email.SendDigest(ctx, d.mailer, d.config.Email.Recipients, digest); err != nil {
			errs = append(errs, fmt.Errorf("email digest: %w", err))
		} else {
			logger.Info().Int("recipients", len(d.config.Email.Recipients)).Msg("Email digest sent")
		}
	}

	return errors.Join(errs...)
}
