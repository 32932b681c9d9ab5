package event

import (
	"encoding/json"
	"fmt"
)

// Severity is the color category attached to a notification.
//
// The zero value is SeverityRed, which doubles as the catch-all for
// unrecognized severity tokens.
type Severity uint8

const (
	SeverityRed Severity = iota
	SeverityOrange
	SeverityYellow
	SeverityGreen

	severityMax // internal
)

// severityNames holds the string representation of each Severity.
var severityNames = map[Severity]string{
	SeverityRed:    "red",
	SeverityOrange: "orange",
	SeverityYellow: "yellow",
	SeverityGreen:  "green",
}

// severityColors holds the decimal RGB value rendered into sink payloads.
var severityColors = map[Severity]int{
	SeverityRed:    16711680,
	SeverityOrange: 16753920,
	SeverityYellow: 16776960,
	SeverityGreen:  65280,
}

// SeverityFromToken maps a source-provided severity token, e.g. an alarm
// state value or a health event category, to a Severity.
//
// The mapping is total: any token outside the known sets, including the
// empty string, maps to SeverityRed.
func SeverityFromToken(token string) Severity {
	switch token {
	case "WARN", "INSUFFICIENT_DATA":
		return SeverityOrange
	case "DEBUG", "scheduledChange", "investigation":
		return SeverityYellow
	case "OK", "RUNNING", "accountNotification":
		return SeverityGreen
	default:
		return SeverityRed
	}
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// Color returns the decimal RGB value of the severity.
func (s Severity) Color() int {
	if color, ok := severityColors[s]; ok {
		return color
	}

	return severityColors[SeverityRed]
}

// Hex returns the severity color as a 6-digit lowercase hex string,
// as expected by message-card style sinks.
func (s Severity) Hex() string {
	return fmt.Sprintf("%06x", s.Color())
}

// MarshalJSON implements the [json.Marshaler] interface for Severity.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the [json.Unmarshaler] interface for Severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for candidate := Severity(0); candidate < severityMax; candidate++ {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown severity %q", name)
}
