package normalize

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/pkg/errors"
)

const (
	stateInsufficientData = "INSUFFICIENT_DATA"

	tagPrefix      = "alarm-"
	tagLevel       = "alarm-level"
	tagServiceName = "alarm-service-name"

	tagDefault = "unknown"
)

type alarmTrigger struct {
	Threshold float64 `json:"Threshold"`
	Namespace string  `json:"Namespace"`
}

type alarmMessage struct {
	AlarmName        string        `json:"AlarmName"`
	AlarmDescription string        `json:"AlarmDescription"`
	NewStateValue    string        `json:"NewStateValue"`
	NewStateReason   string        `json:"NewStateReason"`
	StateChangeTime  string        `json:"StateChangeTime"`
	OldStateValue    string        `json:"OldStateValue"`
	Region           string        `json:"Region"`
	AlarmArn         string        `json:"AlarmArn"`
	Trigger          *alarmTrigger `json:"Trigger"`
}

// alarmRequired lists the top-level keys an alarm payload must carry.
var alarmRequired = []string{
	"AlarmName",
	"AlarmDescription",
	"NewStateValue",
	"NewStateReason",
	"StateChangeTime",
	"OldStateValue",
	"Region",
	"AlarmArn",
}

// alarm normalizes a metric alarm state change.
//
// Transitions out of INSUFFICIENT_DATA are considered noise and suppressed:
// no notification and no error are returned for them.
func (n *Normalizer) alarm(ctx context.Context, p envelope.Payload) (*event.Notification, error) {
	for _, key := range alarmRequired {
		if !p.Has(key) {
			return nil, malformed(envelope.VariantAlarm, key)
		}
	}

	var msg alarmMessage
	if err := json.Unmarshal([]byte(p.Text), &msg); err != nil {
		return nil, errors.Wrap(err, "can't decode alarm payload")
	}
	if msg.Trigger == nil {
		return nil, malformed(envelope.VariantAlarm, "Trigger")
	}

	if msg.OldStateValue == stateInsufficientData {
		n.log.Debugf("alarm %s transitioned out of %s, not sending notification", msg.AlarmName, stateInsufficientData)
		return nil, nil
	}

	tags, err := n.tags.AlarmTags(ctx, msg.AlarmArn)
	if err != nil {
		return nil, errors.Wrapf(err, "can't look up tags for alarm %q", msg.AlarmName)
	}

	level, serviceName := tagDefault, tagDefault
	var remaining []Tag
	for _, tag := range tags {
		switch {
		case !strings.HasPrefix(tag.Key, tagPrefix):
		case tag.Key == tagLevel:
			level = tag.Value
		case tag.Key == tagServiceName:
			serviceName = tag.Value
		default:
			remaining = append(remaining, tag)
		}
	}

	// The first hyphen-delimited segment of the alarm name is the metric,
	// the remainder is the display name.
	metric, cleanName, _ := strings.Cut(msg.AlarmName, "-")
	reason, _, _ := strings.Cut(msg.NewStateReason, ":")

	ev := event.New(
		fmt.Sprintf("%s | %s - %s", p.Timestamp, msg.NewStateValue, cleanName),
		event.SeverityFromToken(msg.NewStateValue),
	)
	ev.AppendField("Level", level)
	ev.AppendField("Region", msg.Region)
	ev.AppendField("Resource", msg.Trigger.Namespace)
	ev.AppendField("Service Name", serviceName)
	ev.AppendField("Metric", metric)
	ev.AppendField("Reason", reason)
	ev.AppendField("Alert Threshold", formatThreshold(msg.Trigger.Threshold))
	ev.AppendField("Datapoints", extractDatapoints(msg.NewStateReason))
	ev.AppendField("State Change", msg.OldStateValue+" -> "+msg.NewStateValue)
	for _, tag := range remaining {
		ev.AppendField(tag.Key, tag.Value)
	}

	return ev, nil
}

var datapointPattern = regexp.MustCompile(`\d+\.\d+`)

// extractDatapoints pulls every floating point number out of a state change
// reason and renders them rounded to one decimal as a bracketed list,
// e.g. "[85.2, 90.1]". A reason without any yields "[]".
func extractDatapoints(reason string) string {
	matches := datapointPattern.FindAllString(reason, -1)

	rounded := make([]string, 0, len(matches))
	for _, match := range matches {
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			continue
		}
		rounded = append(rounded, strconv.FormatFloat(math.Round(f*10)/10, 'f', 1, 64))
	}

	return "[" + strings.Join(rounded, ", ") + "]"
}

// formatThreshold renders a threshold with at least one decimal place,
// so an integral threshold of 80 becomes "80.0".
func formatThreshold(threshold float64) string {
	s := strconv.FormatFloat(threshold, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
