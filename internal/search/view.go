package search

import "github.com/aikya/companion/internal/models"

type Kind int

const (
	KindSearching Kind = iota
	KindResults
	KindEmpty
	KindFailed
)

const (
	SearchingMessage = "Searching..."
	EmptyMessage     = "No bookings found for that name."
	FailedMessage    = "Error searching. Check console."

	FallbackSource = "Direct"
	FallbackAmount = "N/A"
)

// Result is the outcome of one fired search.
type Result struct {
	Query   string
	Kind    Kind
	Results []models.SearchResult
}

type Card struct {
	GuestName    string
	Property     string
	Source       string
	CheckInDate  string
	CheckOutDate string
	Guests       string
	AmountPaid   string
}

// View describes the search results region. Message is set whenever Cards
// is empty.
type View struct {
	Query   string
	Cards   []Card
	Message string
}

// BuildView maps a search result to its view.
func BuildView(result Result) View {
	view := View{Query: result.Query}
	switch result.Kind {
	case KindSearching:
		view.Message = SearchingMessage
	case KindFailed:
		view.Message = FailedMessage
	case KindResults:
		if len(result.Results) == 0 {
			view.Message = EmptyMessage
			break
		}
		view.Cards = make([]Card, 0, len(result.Results))
		for _, r := range result.Results {
			view.Cards = append(view.Cards, buildCard(r))
		}
	default:
		view.Message = EmptyMessage
	}
	return view
}

func buildCard(r models.SearchResult) Card {
	return Card{
		GuestName:    r.GuestName,
		Property:     r.Property,
		Source:       orFallback(r.BookingSource, FallbackSource),
		CheckInDate:  r.CheckInDate,
		CheckOutDate: r.CheckOutDate,
		Guests:       r.NoOfGuests.String(),
		AmountPaid:   orFallback(r.AmountPaid.String(), FallbackAmount),
	}
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
