package normalize

import (
	"context"
	"testing"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/stretchr/testify/require"
)

func TestUnknown(t *testing.T) {
	t.Parallel()

	t.Run("PlainText", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		ev, err := n.Normalize(context.Background(), unwrap("T5", "some freeform text"))
		require.NoError(t, err)
		require.NotNil(t, ev)

		require.Equal(t, "UNKNOWN MESSAGE | T5", ev.Title)
		require.Equal(t, event.SeverityRed, ev.Severity)
		require.Equal(t, []string{"Level", "Region", "AccountID", "Reason"}, fieldKeys(ev))

		expected := map[string]string{
			"Level":     "UNKNOWN",
			"Region":    "us-east-1",
			"AccountID": "123456789012",
			"Reason":    "some freeform text",
		}
		for key, value := range expected {
			actual, ok := ev.Field(key)
			require.True(t, ok, key)
			require.Equal(t, value, actual, key)
		}
	})

	t.Run("UnrecognizedObject", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		ev, err := n.Normalize(context.Background(), unwrap("T5", `{"Records": [], "Region": "eu-west-1"}`))
		require.NoError(t, err)
		require.NotNil(t, ev)

		// The payload's own region wins over the runtime region.
		region, _ := ev.Field("Region")
		require.Equal(t, "eu-west-1", region)

		reason, _ := ev.Field("Reason")
		require.JSONEq(t, `{"Records": [], "Region": "eu-west-1"}`, reason)
		require.Contains(t, reason, "\n")
	})
}

func TestAccountFromIdentity(t *testing.T) {
	t.Parallel()

	require.Equal(t, "123456789012",
		accountFromIdentity("arn:aws:lambda:us-east-1:123456789012:function:alarm-notifications"))
	require.Equal(t, "unknown", accountFromIdentity(""))
	require.Equal(t, "unknown", accountFromIdentity("not-an-arn"))
}
