// Package pipeline runs batches of inbound transport records through
// unwrapping, classification and normalization.
package pipeline

import (
	"context"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/logging"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/normalize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result holds the outcome of one batch pass.
type Result struct {
	// Notifications are the canonical records of the successfully
	// normalized, non-suppressed records, in input order.
	Notifications []*event.Notification

	// Errors holds one error per failed record, each wrapped with the
	// record's position in the batch.
	Errors []error
}

// Pipeline converts batches of transport records into notifications.
type Pipeline struct {
	log        *logging.Logger
	normalizer *normalize.Normalizer
}

// New returns a Pipeline using the given normalizer.
func New(log *logging.Logger, normalizer *normalize.Normalizer) *Pipeline {
	return &Pipeline{log: log, normalizer: normalizer}
}

// Process runs every record of the batch through unwrap, classify and
// normalize. Records are independent: a malformed record is reported in the
// result and does not stop processing of the remaining records.
func (p *Pipeline) Process(ctx context.Context, records []envelope.Record) Result {
	var result Result

	for i, record := range records {
		payload := envelope.Unwrap(record)
		if payload.Object == nil {
			p.log.Debugw("record body is not structured, treating as plain text", zap.Int("record", i))
		}

		n, err := p.normalizer.Normalize(ctx, payload)
		if err != nil {
			p.log.Errorw("can't normalize record", zap.Int("record", i), logging.Error(err))
			result.Errors = append(result.Errors, errors.Wrapf(err, "record %d", i))
			continue
		}
		if n == nil {
			// Deliberately suppressed.
			continue
		}

		p.log.Infow("normalized notification",
			zap.Stringer("variant", envelope.Classify(payload)), zap.String("title", n.Title))

		result.Notifications = append(result.Notifications, n)
	}

	return result
}
