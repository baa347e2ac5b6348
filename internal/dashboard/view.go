package dashboard

import (
	"strconv"
	"time"

	"github.com/aikya/companion/internal/models"
	"github.com/aikya/companion/internal/status"
)

const (
	EmptyTodayArrivals      = "No arrivals"
	EmptyTodayDepartures    = "No departures"
	EmptyTomorrowArrivals   = "No expected arrivals"
	EmptyTomorrowDepartures = "No expected departures"
)

var waitingStatus = status.Status{Text: "Waiting for data", Tone: status.ToneNeutral}

// State is everything the dashboard view depends on.
type State struct {
	Configured  bool
	Snapshot    *models.DashboardSnapshot
	Status      status.Status
	RefreshedAt time.Time
}

type DayStats struct {
	Date      string
	Day       string
	Checkins  string
	Checkouts string
	Occupied  string
}

type Row struct {
	GuestName   string
	Property    string
	CopyPayload string
}

// List is a rendered booking list: either rows or a single empty message.
type List struct {
	ID           string
	Rows         []Row
	EmptyMessage string
}

func (l List) Empty() bool {
	return len(l.Rows) == 0
}

// View is the full description of the dashboard panel.
type View struct {
	Configured        bool
	HasData           bool
	Status            status.Status
	Today             DayStats
	Tomorrow          DayStats
	TodayCheckins     List
	TodayCheckouts    List
	TomorrowCheckins  List
	TomorrowCheckouts List
}

// BuildView maps dashboard state to its view. It has no side effects.
func BuildView(state State) View {
	view := View{
		Configured: state.Configured,
		Status:     state.Status,
	}
	if view.Status == (status.Status{}) {
		view.Status = waitingStatus
	}
	if !state.Configured {
		view.Status = status.NotConnected
	}

	var snapshot models.DashboardSnapshot
	if state.Snapshot != nil {
		snapshot = *state.Snapshot
		view.HasData = true
		view.Today = buildDayStats(snapshot.Today)
		view.Tomorrow = buildDayStats(snapshot.Tomorrow)
	}

	view.TodayCheckins = buildList("today-checkins-list", snapshot.Today.Checkins, EmptyTodayArrivals)
	view.TodayCheckouts = buildList("today-checkouts-list", snapshot.Today.Checkouts, EmptyTodayDepartures)
	view.TomorrowCheckins = buildList("tomorrow-checkins-list", snapshot.Tomorrow.Checkins, EmptyTomorrowArrivals)
	view.TomorrowCheckouts = buildList("tomorrow-checkouts-list", snapshot.Tomorrow.Checkouts, EmptyTomorrowDepartures)
	return view
}

func buildDayStats(day models.DaySummary) DayStats {
	return DayStats{
		Date:      models.FormatDayMonth(day.Date),
		Day:       day.Day,
		Checkins:  strconv.Itoa(day.Summary.Checkins),
		Checkouts: strconv.Itoa(day.Summary.Checkouts),
		Occupied:  strconv.Itoa(day.Summary.Occupied),
	}
}

func buildList(id string, bookings []models.BookingStub, emptyMessage string) List {
	list := List{ID: id, EmptyMessage: emptyMessage}
	if len(bookings) == 0 {
		return list
	}
	list.Rows = make([]Row, 0, len(bookings))
	for _, booking := range bookings {
		list.Rows = append(list.Rows, Row{
			GuestName:   booking.GuestName,
			Property:    booking.Property,
			CopyPayload: CopyPayload(booking),
		})
	}
	return list
}

// CopyPayload is the clipboard text for a booking row.
func CopyPayload(booking models.BookingStub) string {
	return booking.GuestName + " - " + booking.Property
}
