package sink

import (
	"fmt"
)

// DeliveryError reports a failed delivery to one sink: either a response
// outside the sink's success contract, or a transport failure such as a
// timeout, in which case StatusCode is 0 and the cause is wrapped.
type DeliveryError struct {
	Sink       string
	StatusCode int
	Body       string

	cause error
}

func (e *DeliveryError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("can't deliver to %s: %s", e.Sink, e.cause)
	}

	return fmt.Sprintf("failed to deliver to %s, status %d: %q", e.Sink, e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.cause
}
