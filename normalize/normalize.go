// Package normalize converts unwrapped transport payloads into canonical
// notifications, one normalizer per payload variant.
package normalize

import (
	"context"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/logging"
)

// Tag is one key/value pair attached to an alarm resource.
// Order is meaningful and preserved as returned by the provider.
type Tag struct {
	Key   string
	Value string
}

// TagProvider looks up the tags attached to an alarm resource.
type TagProvider interface {
	AlarmTags(ctx context.Context, resourceArn string) ([]Tag, error)
}

// Runtime exposes the execution context of the process itself.
type Runtime interface {
	// Identity returns the colon-delimited identity of the running process,
	// i.e. the function ARN when running on Lambda.
	Identity(ctx context.Context) string

	// Region returns the ambient region the process runs in.
	Region() string
}

// Normalizer converts unwrapped payloads into canonical notifications.
// It is stateless across payloads and safe for concurrent use.
type Normalizer struct {
	log     *logging.Logger
	tags    TagProvider
	runtime Runtime
}

// New returns a Normalizer using the given collaborators.
func New(log *logging.Logger, tags TagProvider, runtime Runtime) *Normalizer {
	return &Normalizer{log: log, tags: tags, runtime: runtime}
}

// Normalize converts one payload into a notification, dispatching on the
// payload's variant. A nil notification together with a nil error means the
// payload was deliberately suppressed.
func (n *Normalizer) Normalize(ctx context.Context, p envelope.Payload) (*event.Notification, error) {
	switch envelope.Classify(p) {
	case envelope.VariantAlarm:
		return n.alarm(ctx, p)
	case envelope.VariantEventBridge:
		return n.eventBridge(p)
	case envelope.VariantBudget:
		return n.budget(p), nil
	case envelope.VariantMail:
		return n.mail(p)
	default:
		return n.unknown(ctx, p), nil
	}
}
