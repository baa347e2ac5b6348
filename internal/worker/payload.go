package worker

import (
	"encoding/json"
	"strings"
)

const (
	DefaultTitle = "New Message"
	DefaultBody  = "You have a new message!"
)

// Payload is the JSON body a push message carries.
type Payload struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

func DefaultPayload() Payload {
	return Payload{Title: DefaultTitle, Body: DefaultBody}
}

// ParsePayload decodes a push body. Empty or malformed data yields the
// default payload; missing fields take their default individually.
func ParsePayload(data []byte) Payload {
	if len(strings.TrimSpace(string(data))) == 0 {
		return DefaultPayload()
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return DefaultPayload()
	}
	if payload.Title == "" {
		payload.Title = DefaultTitle
	}
	if payload.Body == "" {
		payload.Body = DefaultBody
	}
	return payload
}

// Encode serializes the payload for delivery.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}
