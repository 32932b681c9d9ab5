package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/pkg/errors"
)

const (
	sourceECS    = "aws.ecs"
	sourceHealth = "aws.health"

	detailTypeECSTask = "ECS Task State Change"

	levelCrit        = "CRIT"
	resourceECS      = "AWS/ECS"
	ecsDesiredStatus = "RUNNING"
)

type bridgeMessage struct {
	Region     string          `json:"region"`
	Source     string          `json:"source"`
	Account    string          `json:"account"`
	DetailType string          `json:"detail-type"`
	Detail     json.RawMessage `json:"detail"`
}

type ecsDetail struct {
	LastStatus string `json:"lastStatus"`
	Containers []struct {
		Name string `json:"name"`
	} `json:"containers"`
	Group                string   `json:"group"`
	StoppedReason        string   `json:"stoppedReason"`
	EventType            string   `json:"eventType"`
	ClusterArn           string   `json:"clusterArn"`
	CapacityProviderArns []string `json:"capacityProviderArns"`
	Reason               string   `json:"reason"`
}

type healthDetail struct {
	EventTypeCategory string `json:"eventTypeCategory"`
	Service           string `json:"service"`
	EventTypeCode     string `json:"eventTypeCode"`
	EventDescription  []struct {
		LatestDescription string `json:"latestDescription"`
	} `json:"eventDescription"`
}

// eventBridge normalizes a structured event carrying a "detail" payload,
// dispatching on the event's source.
func (n *Normalizer) eventBridge(p envelope.Payload) (*event.Notification, error) {
	for _, key := range []string{"region", "source"} {
		if !p.Has(key) {
			return nil, malformed(envelope.VariantEventBridge, key)
		}
	}

	var msg bridgeMessage
	if err := json.Unmarshal([]byte(p.Text), &msg); err != nil {
		return nil, errors.Wrap(err, "can't decode eventbridge payload")
	}

	switch msg.Source {
	case sourceECS:
		return n.ecsEvent(p, msg)
	case sourceHealth:
		return n.healthEvent(p, msg)
	default:
		ev := event.New("Unknown EventBridge source: "+msg.Source, event.SeverityRed)
		ev.AppendField("Reason", string(msg.Detail))

		return ev, nil
	}
}

// ecsEvent handles container lifecycle events. There is no status token to
// map, so the severity is unconditionally red.
func (n *Normalizer) ecsEvent(p envelope.Payload, msg bridgeMessage) (*event.Notification, error) {
	var detail ecsDetail
	if err := json.Unmarshal(msg.Detail, &detail); err != nil {
		return nil, errors.Wrap(err, "can't decode ecs event detail")
	}

	if msg.DetailType == detailTypeECSTask {
		if len(detail.Containers) == 0 {
			return nil, malformed(envelope.VariantEventBridge, "detail.containers")
		}

		// The service name is the last colon-delimited segment of the task group.
		groupParts := strings.Split(detail.Group, ":")
		serviceName := groupParts[len(groupParts)-1]

		ev := event.New(
			fmt.Sprintf("%s - %s-%s | %s", levelCrit, msg.DetailType, detail.Containers[0].Name, p.Timestamp),
			event.SeverityRed,
		)
		ev.AppendField("Level", levelCrit)
		ev.AppendField("Region", msg.Region)
		ev.AppendField("Resource", resourceECS)
		ev.AppendField("Service Name", serviceName)
		ev.AppendField("Metric", msg.DetailType)
		ev.AppendField("Reason", detail.StoppedReason)
		ev.AppendField("Alert Threshold", ecsDesiredStatus)
		ev.AppendField("State Change", detail.LastStatus)

		return ev, nil
	}

	// Capacity provider and other cluster-level ECS events.
	ev := event.New(
		fmt.Sprintf("%s - %s | %s", levelCrit, msg.DetailType, p.Timestamp),
		event.SeverityRed,
	)
	ev.AppendField("Level", levelCrit)
	ev.AppendField("Region", msg.Region)
	ev.AppendField("Resource", resourceECS)
	ev.AppendField("Cluster Arn", detail.ClusterArn)
	ev.AppendField("Capacity Providers", strings.Join(detail.CapacityProviderArns, ", "))
	ev.AppendField("Event Type", detail.EventType)
	ev.AppendField("Reason", detail.Reason)

	return ev, nil
}

// healthEvent handles service health events. The event category doubles as
// the level and the severity token.
func (n *Normalizer) healthEvent(p envelope.Payload, msg bridgeMessage) (*event.Notification, error) {
	if !p.Has("account") {
		return nil, malformed(envelope.VariantEventBridge, "account")
	}

	var detail healthDetail
	if err := json.Unmarshal(msg.Detail, &detail); err != nil {
		return nil, errors.Wrap(err, "can't decode health event detail")
	}

	if len(detail.EventDescription) == 0 {
		return nil, malformed(envelope.VariantEventBridge, "detail.eventDescription")
	}

	level := detail.EventTypeCategory

	ev := event.New(
		fmt.Sprintf("%s - %s | %s", level, detail.Service, p.Timestamp),
		event.SeverityFromToken(level),
	)
	ev.AppendField("Level", level)
	ev.AppendField("Account ID", msg.Account)
	ev.AppendField("Region", msg.Region)
	ev.AppendField("Resource", detail.Service)
	ev.AppendField("Event Type Code", detail.EventTypeCode)
	ev.AppendField("Reason", detail.EventDescription[0].LatestDescription)

	return ev, nil
}
