// internal/models/bookings.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BookingStub is the minimal booking shape used by dashboard lists.
type BookingStub struct {
	GuestName string `json:"guestName"`
	Property  string `json:"property"`
}

type DayCounts struct {
	Checkins  int `json:"checkins"`
	Checkouts int `json:"checkouts"`
	Occupied  int `json:"occupied"`
}

// DaySummary describes a single day of arrivals and departures.
type DaySummary struct {
	Date      string        `json:"date"`
	Day       string        `json:"day"`
	Summary   DayCounts     `json:"summary"`
	Checkins  []BookingStub `json:"checkins"`
	Checkouts []BookingStub `json:"checkouts"`
}

// DashboardSnapshot is one atomically fetched today/tomorrow pair.
type DashboardSnapshot struct {
	Today    DaySummary `json:"today"`
	Tomorrow DaySummary `json:"tomorrow"`
}

// SearchResult is a booking returned by guest search.
type SearchResult struct {
	GuestName     string     `json:"guestName"`
	Property      string     `json:"property"`
	BookingSource string     `json:"bookingSource,omitempty"`
	CheckInDate   string     `json:"checkInDate"`
	CheckOutDate  string     `json:"checkOutDate"`
	NoOfGuests    FlexString `json:"noOfGuests"`
	AmountPaid    FlexString `json:"amountPaid,omitempty"`
}

// FlexString accepts a JSON string, number or null. Spreadsheet-backed
// backends are inconsistent about which one they send.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// FormatDayMonth renders a YYYY-MM-DD date as DD/MM. Values that are not in
// that layout are returned unchanged.
func FormatDayMonth(date string) string {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) < 3 {
		return date
	}
	day := parts[2]
	if len(day) > 2 {
		// ISO timestamps such as 2024-03-05T00:00:00.000Z
		day = day[:2]
	}
	return day + "/" + parts[1]
}
