// Package status models the status badge shown next to the dashboard
// refresh control.
package status

import (
	"sync"
	"time"
)

type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Status is the text and tone of the badge.
type Status struct {
	Text string
	Tone Tone
}

var (
	Updating     = Status{Text: "Updating...", Tone: ToneNeutral}
	UpdatedNow   = Status{Text: "Updated just now", Tone: ToneSuccess}
	ServerError  = Status{Text: "Server Error", Tone: ToneError}
	Copied       = Status{Text: "Copied!", Tone: ToneSuccess}
	NotConnected = Status{Text: "Backend not configured", Tone: ToneError}
)

// CopyConfirmationDuration is how long a copy confirmation stays visible.
const CopyConfirmationDuration = 2 * time.Second

// Display is the surface a status is drawn on.
type Display interface {
	Current() Status
	Show(Status)
}

// Indicator drives a Display and supports transient flashes. Overlapping
// flashes restore the status that was showing before the first one.
type Indicator struct {
	display Display

	mu    sync.Mutex
	base  *Status
	timer *time.Timer
}

func NewIndicator(display Display) *Indicator {
	return &Indicator{display: display}
}

// Set shows s and cancels any pending flash restore.
func (i *Indicator) Set(s Status) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopFlashLocked()
	i.display.Show(s)
}

// Flash shows s for d, then restores the prior status.
func (i *Indicator) Flash(s Status, d time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.base == nil {
		current := i.display.Current()
		i.base = &current
	}
	if i.timer != nil {
		i.timer.Stop()
	}

	i.display.Show(s)

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		if i.timer != timer || i.base == nil {
			return
		}
		i.display.Show(*i.base)
		i.base = nil
		i.timer = nil
	})
	i.timer = timer
}

func (i *Indicator) stopFlashLocked() {
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.base = nil
}
