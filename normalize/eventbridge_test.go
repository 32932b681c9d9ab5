package normalize

import (
	"context"
	"testing"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/stretchr/testify/require"
)

func TestEventBridge(t *testing.T) {
	t.Parallel()

	t.Run("ECSTaskStateChange", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		body := `{
			"region": "us-east-1",
			"source": "aws.ecs",
			"account": "123456789012",
			"detail-type": "ECS Task State Change",
			"detail": {
				"lastStatus": "STOPPED",
				"containers": [{"name": "api"}, {"name": "sidecar"}],
				"group": "service:checkout",
				"stoppedReason": "Essential container in task exited"
			}
		}`

		ev, err := n.Normalize(context.Background(), unwrap("T2", body))
		require.NoError(t, err)
		require.NotNil(t, ev)

		require.Equal(t, "CRIT - ECS Task State Change-api | T2", ev.Title)
		require.Equal(t, event.SeverityRed, ev.Severity)

		require.Equal(t, []string{
			"Level", "Region", "Resource", "Service Name", "Metric",
			"Reason", "Alert Threshold", "State Change",
		}, fieldKeys(ev))

		expected := map[string]string{
			"Level":           "CRIT",
			"Region":          "us-east-1",
			"Resource":        "AWS/ECS",
			"Service Name":    "checkout",
			"Metric":          "ECS Task State Change",
			"Reason":          "Essential container in task exited",
			"Alert Threshold": "RUNNING",
			"State Change":    "STOPPED",
		}
		for key, value := range expected {
			actual, ok := ev.Field(key)
			require.True(t, ok, key)
			require.Equal(t, value, actual, key)
		}
	})

	t.Run("ECSTaskWithoutContainers", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		body := `{
			"region": "us-east-1",
			"source": "aws.ecs",
			"detail-type": "ECS Task State Change",
			"detail": {"containers": [], "group": "service:checkout"}
		}`

		_, err := n.Normalize(context.Background(), unwrap("T2", body))

		var malformedErr *MalformedEventError
		require.ErrorAs(t, err, &malformedErr)
		require.Equal(t, "detail.containers", malformedErr.Field)
	})

	t.Run("ECSClusterEvent", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		body := `{
			"region": "eu-west-1",
			"source": "aws.ecs",
			"detail-type": "ECS Service Action",
			"detail": {
				"clusterArn": "arn:aws:ecs:eu-west-1:123456789012:cluster/prod",
				"capacityProviderArns": [
					"arn:aws:ecs:eu-west-1:123456789012:capacity-provider/spot",
					"arn:aws:ecs:eu-west-1:123456789012:capacity-provider/ondemand"
				],
				"eventType": "WARN",
				"reason": "capacity provider scaling"
			}
		}`

		ev, err := n.Normalize(context.Background(), unwrap("T2", body))
		require.NoError(t, err)
		require.NotNil(t, ev)

		require.Equal(t, "CRIT - ECS Service Action | T2", ev.Title)
		require.Equal(t, event.SeverityRed, ev.Severity)

		require.Equal(t, []string{
			"Level", "Region", "Resource", "Cluster Arn",
			"Capacity Providers", "Event Type", "Reason",
		}, fieldKeys(ev))

		providers, _ := ev.Field("Capacity Providers")
		require.Equal(t,
			"arn:aws:ecs:eu-west-1:123456789012:capacity-provider/spot, "+
				"arn:aws:ecs:eu-west-1:123456789012:capacity-provider/ondemand",
			providers)
	})

	t.Run("Health", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		body := `{
			"region": "us-east-1",
			"source": "aws.health",
			"account": "123456789012",
			"detail-type": "AWS Health Event",
			"detail": {
				"eventTypeCategory": "scheduledChange",
				"service": "EC2",
				"eventTypeCode": "AWS_EC2_INSTANCE_REBOOT_MAINTENANCE_SCHEDULED",
				"eventDescription": [{"latestDescription": "A reboot is scheduled."}]
			}
		}`

		ev, err := n.Normalize(context.Background(), unwrap("T2", body))
		require.NoError(t, err)
		require.NotNil(t, ev)

		require.Equal(t, "scheduledChange - EC2 | T2", ev.Title)
		require.Equal(t, event.SeverityYellow, ev.Severity)

		expected := map[string]string{
			"Level":           "scheduledChange",
			"Account ID":      "123456789012",
			"Region":          "us-east-1",
			"Resource":        "EC2",
			"Event Type Code": "AWS_EC2_INSTANCE_REBOOT_MAINTENANCE_SCHEDULED",
			"Reason":          "A reboot is scheduled.",
		}
		for key, value := range expected {
			actual, ok := ev.Field(key)
			require.True(t, ok, key)
			require.Equal(t, value, actual, key)
		}
	})

	t.Run("HealthMissingAccount", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		body := `{
			"region": "us-east-1",
			"source": "aws.health",
			"detail": {"eventDescription": [{"latestDescription": "x"}]}
		}`

		_, err := n.Normalize(context.Background(), unwrap("T2", body))

		var malformedErr *MalformedEventError
		require.ErrorAs(t, err, &malformedErr)
		require.Equal(t, "account", malformedErr.Field)
	})

	t.Run("HealthWithoutDescription", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		body := `{
			"region": "us-east-1",
			"source": "aws.health",
			"account": "123456789012",
			"detail": {"eventTypeCategory": "issue", "service": "EC2"}
		}`

		_, err := n.Normalize(context.Background(), unwrap("T2", body))

		var malformedErr *MalformedEventError
		require.ErrorAs(t, err, &malformedErr)
		require.Equal(t, "detail.eventDescription", malformedErr.Field)
	})

	t.Run("UnknownSource", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		body := `{
			"region": "us-east-1",
			"source": "aws.s3",
			"detail": {"bucket": "assets"}
		}`

		ev, err := n.Normalize(context.Background(), unwrap("T2", body))
		require.NoError(t, err)
		require.NotNil(t, ev)

		require.Equal(t, "Unknown EventBridge source: aws.s3", ev.Title)
		require.Equal(t, event.SeverityRed, ev.Severity)
		require.Equal(t, []string{"Reason"}, fieldKeys(ev))

		reason, _ := ev.Field("Reason")
		require.JSONEq(t, `{"bucket": "assets"}`, reason)
	})

	t.Run("MissingRegion", func(t *testing.T) {
		t.Parallel()

		n := newTestNormalizer(nil, nil)

		_, err := n.Normalize(context.Background(), unwrap("T2", `{"source": "aws.ecs", "detail": {}}`))

		var malformedErr *MalformedEventError
		require.ErrorAs(t, err, &malformedErr)
		require.Equal(t, "region", malformedErr.Field)
	})
}
