package envelope

import (
	"encoding/json"
)

// Payload is the unwrapped form of a Record.
//
// Text always carries the raw message body. Object holds the decoded body
// if it is a JSON object, nil otherwise; payloads that fail structured
// decoding are kept as plain text, which is a fallback, not an error.
type Payload struct {
	Timestamp string
	Text      string
	Object    map[string]any
}

// Unwrap extracts the timestamp and decoded payload from a transport record.
// It never fails.
func Unwrap(r Record) Payload {
	p := Payload{Timestamp: r.Timestamp, Text: r.Body}

	var obj map[string]any
	if err := json.Unmarshal([]byte(r.Body), &obj); err == nil {
		p.Object = obj
	}

	return p
}

// Has reports whether the decoded payload is an object containing key.
func (p Payload) Has(key string) bool {
	_, ok := p.Object[key]
	return ok
}
