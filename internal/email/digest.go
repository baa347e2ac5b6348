package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/models"
)

type DigestEmail struct {
	Subject string
	Body    string
}

// BuildDigest renders the dashboard snapshot as a plain-text digest.
func BuildDigest(appName string, snapshot models.DashboardSnapshot) DigestEmail {
	subject := fmt.Sprintf("%s: %s arrivals and departures", appName, models.FormatDayMonth(snapshot.Today.Date))

	var body strings.Builder
	writeDay(&body, "Today", snapshot.Today)
	body.WriteString("\n")
	writeDay(&body, "Tomorrow", snapshot.Tomorrow)

	return DigestEmail{Subject: subject, Body: body.String()}
}

func writeDay(b *strings.Builder, label string, day models.DaySummary) {
	fmt.Fprintf(b, "%s (%s, %s)\n", label, strings.TrimSpace(day.Day), models.FormatDayMonth(day.Date))
	fmt.Fprintf(b, "Check-ins: %d  Check-outs: %d  Occupied: %d\n",
		day.Summary.Checkins, day.Summary.Checkouts, day.Summary.Occupied)
	writeBookings(b, "Arriving", day.Checkins)
	writeBookings(b, "Departing", day.Checkouts)
}

func writeBookings(b *strings.Builder, heading string, bookings []models.BookingStub) {
	fmt.Fprintf(b, "%s:\n", heading)
	if len(bookings) == 0 {
		b.WriteString("  none\n")
		return
	}
	for _, booking := range bookings {
		fmt.Fprintf(b, "  - %s (%s)\n", booking.GuestName, booking.Property)
	}
}

// SendDigest mails the digest to every recipient. A failed recipient does
// not stop the others; all failures are returned joined.
func SendDigest(ctx context.Context, sender EmailSender, recipients []string, digest DigestEmail) error {
	logger := log.Ctx(ctx)

	var errs []error
	for _, recipient := range recipients {
		sendCtx, cancel := newEmailContext(ctx, sendTimeout)
		err := sender.Send(sendCtx, recipient, digest.Subject, digest.Body)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("send digest to %s: %w", recipient, err))
			continue
		}
		logger.Debug().Str("recipient", recipient).Msg("Digest email sent")
	}
	return errors.Join(errs...)
}
