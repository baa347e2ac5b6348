package models

import (
	"encoding/json"
	"testing"
)

func TestFormatDayMonth(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "iso_date", value: "2024-03-05", want: "05/03"},
		{name: "iso_timestamp", value: "2024-12-31T00:00:00.000Z", want: "31/12"},
		{name: "empty", value: "", want: ""},
		{name: "not_a_date", value: "tomorrow", want: "tomorrow"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := FormatDayMonth(test.value); got != test.want {
				t.Fatalf("FormatDayMonth(%q) = %q, want %q", test.value, got, test.want)
			}
		})
	}
}

func TestSearchResultDecodesFlexibleFields(t *testing.T) {
	payload := `[
		{"guestName":"Ana","property":"Villa","checkInDate":"2024-03-05","checkOutDate":"2024-03-07","noOfGuests":2,"amountPaid":1500.5},
		{"guestName":"Ben","property":"Loft","checkInDate":"2024-03-06","checkOutDate":"2024-03-08","noOfGuests":"3","amountPaid":null}
	]`

	var results []SearchResult
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].NoOfGuests != "2" || results[0].AmountPaid != "1500.5" {
		t.Fatalf("unexpected numeric decoding: %+v", results[0])
	}
	if results[1].NoOfGuests != "3" || results[1].AmountPaid != "" {
		t.Fatalf("unexpected string/null decoding: %+v", results[1])
	}
	if results[1].BookingSource != "" {
		t.Fatalf("expected empty booking source, got %q", results[1].BookingSource)
	}
}

func TestFlexStringRejectsObjects(t *testing.T) {
	var value FlexString
	if err := json.Unmarshal([]byte(`{"amount":1}`), &value); err == nil {
		t.Fatal("expected error for object value")
	}
}
