package search

import (
	"testing"

	"github.com/aikya/companion/internal/models"
)

func TestBuildViewCards(t *testing.T) {
	view := BuildView(Result{
		Query: "Ana",
		Kind:  KindResults,
		Results: []models.SearchResult{
			{GuestName: "Ana", Property: "Villa", BookingSource: "Airbnb", CheckInDate: "2024-03-05", CheckOutDate: "2024-03-07", NoOfGuests: "2", AmountPaid: "1500"},
			{GuestName: "Ana B", Property: "Loft", CheckInDate: "2024-04-01", CheckOutDate: "2024-04-02", NoOfGuests: "1"},
		},
	})

	if view.Message != "" {
		t.Fatalf("unexpected message %q", view.Message)
	}
	if len(view.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(view.Cards))
	}
	if view.Cards[0].Source != "Airbnb" || view.Cards[0].AmountPaid != "1500" {
		t.Fatalf("unexpected first card: %+v", view.Cards[0])
	}
	if view.Cards[1].Source != "Direct" {
		t.Fatalf("missing source rendered as %q, want Direct", view.Cards[1].Source)
	}
	if view.Cards[1].AmountPaid != "N/A" {
		t.Fatalf("missing amount rendered as %q, want N/A", view.Cards[1].AmountPaid)
	}
}

func TestBuildViewMessages(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{name: "searching", result: Result{Kind: KindSearching}, want: "Searching..."},
		{name: "empty", result: Result{Kind: KindEmpty}, want: "No bookings found for that name."},
		{name: "results_without_rows", result: Result{Kind: KindResults}, want: "No bookings found for that name."},
		{name: "failed", result: Result{Kind: KindFailed}, want: "Error searching. Check console."},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			view := BuildView(test.result)
			if view.Message != test.want {
				t.Fatalf("message = %q, want %q", view.Message, test.want)
			}
			if len(view.Cards) != 0 {
				t.Fatalf("expected no cards, got %d", len(view.Cards))
			}
		})
	}
}
