package worker

import "testing"

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Payload
	}{
		{name: "full", data: `{"title":"Hi","body":"There"}`, want: Payload{Title: "Hi", Body: "There"}},
		{name: "title_only", data: `{"title":"Hi"}`, want: Payload{Title: "Hi", Body: DefaultBody}},
		{name: "body_only", data: `{"body":"There"}`, want: Payload{Title: DefaultTitle, Body: "There"}},
		{name: "whitespace", data: "  ", want: DefaultPayload()},
		{name: "array", data: `[1,2]`, want: DefaultPayload()},
		{name: "garbage", data: `<<>>`, want: DefaultPayload()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ParsePayload([]byte(test.data)); got != test.want {
				t.Fatalf("ParsePayload(%q) = %+v, want %+v", test.data, got, test.want)
			}
		})
	}
}

func TestPayloadEncodeRoundTrip(t *testing.T) {
	encoded, err := Payload{Title: "Today", Body: "2 arrivals"}.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := ParsePayload(encoded); got.Title != "Today" || got.Body != "2 arrivals" {
		t.Fatalf("round trip = %+v", got)
	}
}
