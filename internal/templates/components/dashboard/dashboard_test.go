package dashboard

import (
	"strings"
	"testing"

	"github.com/aikya/companion/internal/dashboard"
)

func TestBookingListEscapesGuestText(t *testing.T) {
	out := buildListHTML(dashboard.List{
		ID: "today-checkins",
		Rows: []dashboard.Row{{
			GuestName:   `<img src=x onerror="alert(1)">`,
			Property:    "Villa & Co",
			CopyPayload: `Guest "Ana"`,
		}},
	})

	if strings.Contains(out, "<img") {
		t.Fatalf("guest name not escaped: %s", out)
	}
	for _, want := range []string{
		"&lt;img src=x onerror=&#34;alert(1)&#34;&gt;",
		"Villa &amp; Co",
		`data-copy="Guest &#34;Ana&#34;"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in list: %s", want, out)
		}
	}
}

func TestEmptyListRendersMessage(t *testing.T) {
	out := buildListHTML(dashboard.List{ID: "tomorrow-checkouts", EmptyMessage: "No check-outs"})
	want := `<ul id="tomorrow-checkouts" class="booking-list"><li class="empty">No check-outs</li></ul>`
	if out != want {
		t.Fatalf("got %s, want %s", out, want)
	}
}
