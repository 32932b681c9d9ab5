package normalize

import (
	"context"
	"testing"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// staticTags is a TagProvider returning a fixed tag set,
// recording the requested resource ARN.
type staticTags struct {
	tags []Tag
	err  error

	requestedArn string
}

func (s *staticTags) AlarmTags(_ context.Context, resourceArn string) ([]Tag, error) {
	s.requestedArn = resourceArn
	return s.tags, s.err
}

// staticRuntime is a Runtime with fixed identity and region.
type staticRuntime struct {
	identity string
	region   string
}

func (s staticRuntime) Identity(context.Context) string { return s.identity }
func (s staticRuntime) Region() string                  { return s.region }

func newTestNormalizer(tags *staticTags, runtime Runtime) *Normalizer {
	if tags == nil {
		tags = &staticTags{}
	}
	if runtime == nil {
		runtime = staticRuntime{
			identity: "arn:aws:lambda:us-east-1:123456789012:function:alarm-notifications",
			region:   "us-east-1",
		}
	}

	return New(logging.NewLogger(zap.NewNop().Sugar()), tags, runtime)
}

func unwrap(timestamp, body string) envelope.Payload {
	return envelope.Unwrap(envelope.Record{Timestamp: timestamp, Body: body})
}

// fieldKeys returns the field keys in order.
func fieldKeys(n *event.Notification) []string {
	keys := make([]string, 0, len(n.Fields()))
	for _, f := range n.Fields() {
		keys = append(keys, f.Key)
	}

	return keys
}

func TestNormalizeDispatch(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(nil, nil)

	t.Run("UnknownNeverFails", func(t *testing.T) {
		t.Parallel()

		ev, err := n.Normalize(context.Background(), unwrap("T1", "some opaque text"))
		require.NoError(t, err)
		require.NotNil(t, ev)
		require.Equal(t, "UNKNOWN MESSAGE | T1", ev.Title)
	})

	t.Run("BudgetByMarker", func(t *testing.T) {
		t.Parallel()

		ev, err := n.Normalize(context.Background(), unwrap("T1", "AWS Budget Notification\nBudget Type: Cost"))
		require.NoError(t, err)
		require.NotNil(t, ev)
		require.Equal(t, "Cost - BUDGET | T1", ev.Title)
	})
}
