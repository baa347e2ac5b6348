package status

import (
	"sync"
	"testing"
	"time"
)

type recordingDisplay struct {
	mu      sync.Mutex
	current Status
	shown   []Status
}

func (d *recordingDisplay) Current() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *recordingDisplay) Show(s Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = s
	d.shown = append(d.shown, s)
}

func waitForStatus(t *testing.T, d *recordingDisplay, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if d.Current() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("status = %+v, want %+v", d.Current(), want)
}

func TestFlashRestoresPriorStatus(t *testing.T) {
	display := &recordingDisplay{current: UpdatedNow}
	indicator := NewIndicator(display)

	indicator.Flash(Copied, 20*time.Millisecond)
	if got := display.Current(); got != Copied {
		t.Fatalf("status during flash = %+v, want %+v", got, Copied)
	}

	waitForStatus(t, display, UpdatedNow)
}

func TestOverlappingFlashesRestoreOriginal(t *testing.T) {
	display := &recordingDisplay{current: ServerError}
	indicator := NewIndicator(display)

	indicator.Flash(Copied, 30*time.Millisecond)
	indicator.Flash(Copied, 30*time.Millisecond)

	waitForStatus(t, display, ServerError)

	time.Sleep(50 * time.Millisecond)
	if got := display.Current(); got != ServerError {
		t.Fatalf("status after flashes = %+v, want %+v", got, ServerError)
	}
}

func TestSetCancelsPendingRestore(t *testing.T) {
	display := &recordingDisplay{current: UpdatedNow}
	indicator := NewIndicator(display)

	indicator.Flash(Copied, 20*time.Millisecond)
	indicator.Set(Updating)

	time.Sleep(50 * time.Millisecond)
	if got := display.Current(); got != Updating {
		t.Fatalf("status = %+v, want %+v", got, Updating)
	}
}
