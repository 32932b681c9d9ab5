// Package envelope unwraps inbound transport records and classifies their
// payload shape.
package envelope

import (
	"github.com/aws/aws-lambda-go/events"
)

// timestampLayout matches the wire format of SNS delivery timestamps.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Record is one inbound transport record: the delivery timestamp and the
// raw message body as handed over by the pub/sub transport.
type Record struct {
	Timestamp string
	Body      string
}

// FromSNSEvent flattens an SNS event into a batch of transport records.
func FromSNSEvent(e events.SNSEvent) []Record {
	records := make([]Record, 0, len(e.Records))
	for _, r := range e.Records {
		records = append(records, Record{
			Timestamp: r.SNS.Timestamp.UTC().Format(timestampLayout),
			Body:      r.SNS.Message,
		})
	}

	return records
}
